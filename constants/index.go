package constants

// Vai trò tài khoản
const (
	ROLE_ADMIN = "ADMIN"
	ROLE_OWNER = "STALL_OWNER"
)

// Trạng thái đơn hàng
const (
	ORDER_PENDING   = "PENDING"
	ORDER_PREPARING = "PREPARING"
	ORDER_READY     = "READY"
	ORDER_COMPLETED = "COMPLETED"
	ORDER_CANCELLED = "CANCELLED"
)

// Phương thức thanh toán
const (
	PAYMENT_CASH        = "CASH"
	PAYMENT_CAMPUS_CARD = "CAMPUS_CARD"
)

// Trạng thái yêu cầu hủy đơn
const (
	REQUEST_PENDING  = "PENDING"
	REQUEST_APPROVED = "APPROVED"
	REQUEST_DECLINED = "DECLINED"
)

// Loại xử phạt
const (
	PENALTY_WARNING    = "WARNING"
	PENALTY_SUSPENSION = "SUSPENSION"
	PENALTY_BAN        = "BAN"
)

// Người thực hiện chuyển trạng thái
const (
	ACTOR_OWNER    = "STALL_OWNER"
	ACTOR_ADMIN    = "ADMIN"
	ACTOR_CUSTOMER = "CUSTOMER"
	ACTOR_SYSTEM   = "SYSTEM"
)

// Thông báo lỗi chung
const (
	ERROR_INTERNAL_ERROR     = "Lỗi hệ thống, vui lòng thử lại sau"
	DATA_INPUT_IS_NOT_NUMBER = "Dữ liệu truyền vào phải là số"
	ERROR_PERMISSION_DENIED  = "Không có quyền thực hiện thao tác này"
	ERROR_NOT_LOGGED_IN      = "Vui lòng đăng nhập"
	MISSING_LOGIN_INPUT      = "Thiếu tên đăng nhập hoặc mật khẩu"
	INVALID_USERNAME         = "Tên đăng nhập không tồn tại"
	INVALID_PASSWORD         = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE       = "Tài khoản đã bị khóa"
)
