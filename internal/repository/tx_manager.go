package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	CartItems() CartItemRepository
	Products() ProductRepository
	ProductTypes() ProductTypeRepository
	Orders() OrderRepository
	OrderProducts() OrderProductRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
