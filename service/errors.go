package service

import "errors"

// Lỗi validate: bị từ chối trước khi ghi bất cứ thứ gì, người gọi sửa input rồi thử lại
var (
	ErrEmptyCart             = errors.New("giỏ hàng đang trống")
	ErrInsufficientCash      = errors.New("tiền mặt đưa không đủ so với tổng đơn")
	ErrCashRequired          = errors.New("thanh toán tiền mặt cần nhập số tiền đưa")
	ErrDeclineReasonRequired = errors.New("từ chối yêu cầu hủy phải có lý do")
	ErrCancelReasonRequired  = errors.New("hủy đơn phải có lý do")
	ErrWrongOrderStatus      = errors.New("trạng thái đơn không cho phép thao tác này")
	ErrSuspensionNeedsDays   = errors.New("án đình chỉ phải có số ngày hiệu lực")
	ErrAccountSuspended      = errors.New("tài khoản đang bị đình chỉ, không thể đặt món")
	ErrPendingRequestExists  = errors.New("đơn này đã có một yêu cầu hủy đang chờ xử lý")
)

// Lỗi trạng thái và tranh chấp
var (
	// ErrIllegalTransition chuyển trạng thái không có trong bảng, không ghi gì cả
	ErrIllegalTransition = errors.New("chuyển trạng thái không hợp lệ")
	// ErrAlreadyResolved yêu cầu hủy đã được phản hồi, phản hồi đầu tiên thắng
	ErrAlreadyResolved = errors.New("yêu cầu hủy đã được phản hồi trước đó")
	// ErrOrderAlreadyMoved đơn đã tiến triển giữa lúc gửi yêu cầu và lúc duyệt,
	// khác với ErrIllegalTransition vì đây là tiến triển song song hợp lệ
	ErrOrderAlreadyMoved = errors.New("đơn đã chuyển trạng thái trong lúc chờ duyệt")
	// ErrPermissionDenied người gọi không có quyền trên tài nguyên này
	ErrPermissionDenied = errors.New("không có quyền thực hiện thao tác này")
	// ErrNotFound không tìm thấy bản ghi
	ErrNotFound = errors.New("không tìm thấy bản ghi")
	// ErrCartClearFailed đơn đã tạo đủ nhưng dọn giỏ thất bại, chỉ cần thử dọn lại
	ErrCartClearFailed = errors.New("tạo đơn thành công nhưng chưa dọn được giỏ hàng")
)

// IsValidationError phân lớp lỗi cho handler map về HTTP 400
func IsValidationError(err error) bool {
	for _, e := range []error{
		ErrEmptyCart, ErrInsufficientCash, ErrCashRequired,
		ErrDeclineReasonRequired, ErrCancelReasonRequired, ErrWrongOrderStatus,
		ErrSuspensionNeedsDays, ErrAccountSuspended, ErrPendingRequestExists,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
