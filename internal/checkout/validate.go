package checkout

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
)

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidateShipping checks the shipping form against the storefront rules and
// returns one message per failing field, keyed by field name. An empty map
// means the form is valid.
//
// The function is pure: it can run on every keystroke without accumulating
// state or touching the network.
func ValidateShipping(in entity.ShippingInfo) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(in.FullName)
	switch {
	case name == "":
		errs["fullName"] = "Vui lòng nhập họ tên"
	case len([]rune(name)) < 2:
		errs["fullName"] = "Họ tên phải có ít nhất 2 ký tự"
	}

	phone := stripSpaces(in.Phone)
	switch {
	case phone == "":
		errs["phone"] = "Vui lòng nhập số điện thoại"
	case !phonePattern.MatchString(phone):
		errs["phone"] = "Số điện thoại phải có 10-11 chữ số"
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		errs["email"] = "Vui lòng nhập email"
	case !emailPattern.MatchString(email):
		errs["email"] = "Email không hợp lệ"
	}

	address := strings.TrimSpace(in.Address)
	switch {
	case address == "":
		errs["address"] = "Vui lòng nhập địa chỉ giao hàng"
	case len([]rune(address)) < 10:
		errs["address"] = "Địa chỉ phải có ít nhất 10 ký tự"
	}

	return errs
}

// stripSpaces removes every whitespace rune, so "090 123 4567" validates the
// same as "0901234567".
func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
