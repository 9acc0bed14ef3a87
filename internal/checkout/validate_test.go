package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sportshop/checkout-gateway/internal/gateway/core/domain/entity"
)

func validShipping() entity.ShippingInfo {
	return entity.ShippingInfo{
		FullName: "Nguyễn Văn An",
		Phone:    "0901234567",
		Email:    "an.nguyen@example.com",
		Address:  "12 Lê Lợi, Quận 1, TP.HCM",
	}
}

func TestValidateShipping_Valid(t *testing.T) {
	errs := ValidateShipping(validShipping())
	assert.Empty(t, errs)
}

func TestValidateShipping_Phone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"ten digits", "0901234567", false},
		{"eleven digits", "09012345678", false},
		{"spaces between digits", "090 123 4567", false},
		{"nine digits", "090 123 45", true},
		{"twelve digits", "090123456789", true},
		{"letters", "09012345ab", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validShipping()
			in.Phone = tt.phone
			errs := ValidateShipping(in)
			if tt.wantErr {
				assert.Contains(t, errs, "phone")
			} else {
				assert.NotContains(t, errs, "phone")
			}
		})
	}
}

func TestValidateShipping_FullName(t *testing.T) {
	in := validShipping()

	in.FullName = ""
	assert.Contains(t, ValidateShipping(in), "fullName")

	in.FullName = " A "
	assert.Contains(t, ValidateShipping(in), "fullName")

	in.FullName = "An"
	assert.NotContains(t, ValidateShipping(in), "fullName")
}

func TestValidateShipping_Email(t *testing.T) {
	in := validShipping()

	for _, bad := range []string{"", "not-an-email", "a@b", "a b@c.com", "@c.com"} {
		in.Email = bad
		assert.Contains(t, ValidateShipping(in), "email", "email %q should fail", bad)
	}

	in.Email = "khach.hang@shop.vn"
	assert.NotContains(t, ValidateShipping(in), "email")
}

func TestValidateShipping_Address(t *testing.T) {
	in := validShipping()

	in.Address = "ngắn quá"
	assert.Contains(t, ValidateShipping(in), "address")

	in.Address = "          " // whitespace only
	assert.Contains(t, ValidateShipping(in), "address")

	in.Address = "12 Nguyễn Huệ, Quận 1"
	assert.NotContains(t, ValidateShipping(in), "address")
}

func TestValidateShipping_Stateless(t *testing.T) {
	in := validShipping()
	in.Phone = "bad"

	first := ValidateShipping(in)
	second := ValidateShipping(in)
	assert.Equal(t, first, second)
}
