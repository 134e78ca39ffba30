package validator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// 数量・価格・郵便番号の入力チェック。
// フォーム入力は文字列で来るので文字列のまま判定する。

// IsValidQuantity は0以上の整数だけ通す。
// 空文字・数値以外・負数・小数はfalse。
func IsValidQuantity(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return n >= 0
}

// IsValidPrice は0以上・小数2桁までの数値だけ通す。
func IsValidPrice(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	if d.IsNegative() {
		return false
	}

	//小数3桁以上はNG
	return d.Exponent() >= -2
}

// IsValidZipCode は半角数字ちょうど5桁。
func IsValidZipCode(raw string) bool {
	if len(raw) != 5 {
		return false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
