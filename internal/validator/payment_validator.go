package validator

import (
	"strconv"
	"strings"
	"time"
)

// カード入力のチェック。保存するだけで決済はしない。

// IsValidCardNumber は13〜19桁の数字でLuhnチェックに通るものだけ許可。
// スペースとハイフンは区切りとして無視する。
func IsValidCardNumber(raw string) bool {
	s := strings.ReplaceAll(raw, " ", "")
	s = strings.ReplaceAll(s, "-", "")

	if len(s) < 13 || len(s) > 19 {
		return false
	}

	sum := 0
	double := false

	//Luhn: 右から1桁おきに2倍して各桁を足す
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')

		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}

	return sum%10 == 0
}

// IsValidExpMonth は1〜12。
func IsValidExpMonth(raw string) bool {
	m, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return m >= 1 && m <= 12
}

// IsValidExpYear は下2桁で今年から+20年まで。
func IsValidExpYear(raw string) bool {
	y, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if y < 0 || y > 99 {
		return false
	}

	yy := time.Now().Year() % 100
	return y >= yy && y <= yy+20
}

// IsValidCVV は数字3〜4桁。
func IsValidCVV(raw string) bool {
	if len(raw) < 3 || len(raw) > 4 {
		return false
	}
	for _, c := range raw {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsValidCardholderName は空白だけの名前を弾く。
func IsValidCardholderName(raw string) bool {
	return strings.TrimSpace(raw) != ""
}
