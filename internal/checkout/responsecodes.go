package checkout

// vnpayResponseMessages maps VNPay's numeric response codes to the
// storefront's Vietnamese explanations. The table is fixed by the gateway's
// published contract; codes outside it render as an unknown error.
var vnpayResponseMessages = map[string]string{
	"01": "Giao dịch chưa hoàn tất",
	"02": "Giao dịch bị lỗi",
	"04": "Giao dịch đảo (Khách hàng đã bị trừ tiền tại Ngân hàng nhưng giao dịch chưa thành công)",
	"05": "VNPAY đang xử lý giao dịch này (Giao dịch hoàn tiền)",
	"06": "VNPAY đã gửi yêu cầu hoàn tiền sang Ngân hàng",
	"07": "Trừ tiền thành công. Giao dịch bị nghi ngờ (liên quan tới lừa đảo, giao dịch bất thường)",
	"09": "Giao dịch không thành công do: Thẻ/Tài khoản của khách hàng chưa đăng ký dịch vụ InternetBanking tại ngân hàng",
	"10": "Giao dịch không thành công do: Khách hàng xác thực thông tin thẻ/tài khoản không đúng quá 3 lần",
	"11": "Giao dịch không thành công do: Đã hết hạn chờ thanh toán. Xin quý khách vui lòng thực hiện lại giao dịch",
	"12": "Giao dịch không thành công do: Thẻ/Tài khoản của khách hàng bị khóa",
	"13": "Giao dịch không thành công do Quý khách nhập sai mật khẩu xác thực giao dịch (OTP)",
	"24": "Giao dịch không thành công do: Khách hàng hủy giao dịch",
	"51": "Giao dịch không thành công do: Tài khoản của quý khách không đủ số dư để thực hiện giao dịch",
	"65": "Giao dịch không thành công do: Tài khoản của Quý khách đã vượt quá hạn mức giao dịch trong ngày",
	"75": "Ngân hàng thanh toán đang bảo trì",
	"79": "Giao dịch không thành công do: KH nhập sai mật khẩu thanh toán quá số lần quy định",
	"99": "Giao dịch không thành công do lỗi khác",
}

const unknownResponseMessage = "Giao dịch không thành công do lỗi không xác định"

// ResponseCodeMessage returns the human-readable explanation for a VNPay
// response code, falling back to a generic unknown-error text.
func ResponseCodeMessage(code string) string {
	if msg, ok := vnpayResponseMessages[code]; ok {
		return msg
	}
	return unknownResponseMessage
}
