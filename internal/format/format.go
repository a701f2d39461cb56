// Package format renders money, durations, dates and phone numbers the way
// Vietnamese customers read them.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Vietnam is Indochina Time. A fixed zone keeps rendering independent of the
// host tzdata.
var Vietnam = time.FixedZone("ICT", 7*60*60)

var printer = message.NewPrinter(language.Vietnamese)

// Number groups digits with dots: 9500000 -> "9.500.000".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Currency renders an amount in VND: "9.500.000 ₫".
func Currency(amount int64) string {
	return Number(amount) + " ₫"
}

// Millions renders amounts of a million or more in the short "tr" form
// ("9.5tr", "35tr"); smaller amounts fall back to Currency.
func Millions(amount int64) string {
	if amount < 1_000_000 {
		return Currency(amount)
	}
	if amount%1_000_000 == 0 {
		return fmt.Sprintf("%dtr", amount/1_000_000)
	}
	return fmt.Sprintf("%.1ftr", float64(amount)/1_000_000)
}

// EstimatedTime renders a duration in working days as days and weeks.
func EstimatedTime(days int) string {
	switch {
	case days <= 0:
		return "Ngay lập tức"
	case days == 1:
		return "1 ngày"
	case days < 7:
		return fmt.Sprintf("%d ngày", days)
	}

	weeks, rest := days/7, days%7
	if rest == 0 {
		return fmt.Sprintf("%d tuần", weeks)
	}
	return fmt.Sprintf("%d tuần %d ngày", weeks, rest)
}

// Days renders "N ngày", or "---" when unknown.
func Days(days int) string {
	if days <= 0 {
		return "---"
	}
	return fmt.Sprintf("%d ngày", days)
}

// Phone groups a 10-digit number as "0901 234 567". Other inputs are
// returned unchanged.
func Phone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return phone
	}
	return d[:4] + " " + d[4:7] + " " + d[7:]
}

// Date renders t as dd/mm/yyyy in Vietnam time.
func Date(t time.Time) string {
	return t.In(Vietnam).Format("02/01/2006")
}

// Timestamp renders t the way vi-VN locale strings look in Vietnam time:
// "15:04:05 2/1/2006".
func Timestamp(t time.Time) string {
	return t.In(Vietnam).Format("15:04:05 2/1/2006")
}
