package i18n

import "golang.org/x/text/language"

// translations holds every localized string, keyed by language then message key.
var translations = map[language.Tag]map[string]string{
	language.Vietnamese: {
		"error.NOT_FOUND":            "Không tìm thấy dữ liệu",
		"error.INVALID_INPUT":        "Dữ liệu không hợp lệ",
		"error.VALIDATION_ERROR":     "Dữ liệu không hợp lệ",
		"error.UNAUTHORIZED":         "Bạn chưa đăng nhập hoặc không có quyền",
		"error.FORBIDDEN":            "Bạn không có quyền truy cập",
		"error.INVALID_STATE":        "Không thể thực hiện ở trạng thái hiện tại",
		"error.NOT_IMPLEMENTED":      "Chức năng chưa được hỗ trợ",
		"error.UPSTREAM_UNAVAILABLE": "Không kết nối được máy chủ kế toán",
		"error.SESSION_EXPIRED":      "Phiên làm việc đã hết hạn, vui lòng đăng nhập lại",
		"error.RATE_LIMITED":         "Quá nhiều yêu cầu, vui lòng thử lại sau",
		"error.INTERNAL_ERROR":       "Đã xảy ra lỗi, vui lòng thử lại",
		"error.REQUEST_TOO_LARGE":    "Dữ liệu gửi lên quá lớn",
		"error.ROUTE_NOT_FOUND":      "Đường dẫn không tồn tại",
		"error.METHOD_NOT_ALLOWED":   "Phương thức không được hỗ trợ",

		"stage.editing":   "Đang soạn",
		"stage.preparing": "Đang chuẩn bị",
		"stage.delivered": "Đã giao",

		"export.orders.sheet": "Đơn hàng",
		"export.col.number":   "Số",
		"export.col.date":     "Ngày",
		"export.col.customer": "Khách hàng",
		"export.col.status":   "Trạng thái",
		"export.col.stage":    "Giai đoạn",
		"export.col.employee": "Nhân viên",
		"export.col.currency": "Tiền tệ",
		"export.col.amount":   "Thành tiền",
		"export.col.comment":  "Ghi chú",
		"export.total":        "Tổng cộng",

		"overview.summary":   "%s đơn hàng, tổng %s",
		"overview.cash_in":   "Tiền thu: %s",
		"overview.purchases": "Mua hàng: %s",
		"overview.net":       "Dòng tiền ròng: %s",
		"overview.truncated": "Số liệu chỉ tính trên %s chứng từ đầu tiên",
	},
	language.English: {
		"error.NOT_FOUND":            "Not found",
		"error.INVALID_INPUT":        "Invalid input",
		"error.VALIDATION_ERROR":     "Invalid input",
		"error.UNAUTHORIZED":         "Not signed in or not authorized",
		"error.FORBIDDEN":            "Access denied",
		"error.INVALID_STATE":        "Operation not allowed in the current state",
		"error.NOT_IMPLEMENTED":      "Operation is not supported",
		"error.UPSTREAM_UNAVAILABLE": "The accounting service is unavailable",
		"error.SESSION_EXPIRED":      "Your session has expired, please sign in again",
		"error.RATE_LIMITED":         "Too many requests, please try again later",
		"error.INTERNAL_ERROR":       "Something went wrong, please try again",
		"error.REQUEST_TOO_LARGE":    "Request body is too large",
		"error.ROUTE_NOT_FOUND":      "Route not found",
		"error.METHOD_NOT_ALLOWED":   "Method not allowed",

		"stage.editing":   "Editing",
		"stage.preparing": "Preparing",
		"stage.delivered": "Delivered",

		"export.orders.sheet": "Orders",
		"export.col.number":   "Number",
		"export.col.date":     "Date",
		"export.col.customer": "Customer",
		"export.col.status":   "Status",
		"export.col.stage":    "Stage",
		"export.col.employee": "Employee",
		"export.col.currency": "Currency",
		"export.col.amount":   "Amount",
		"export.col.comment":  "Comment",
		"export.total":        "Total",

		"overview.summary":   "%s orders, total %s",
		"overview.cash_in":   "Cash in: %s",
		"overview.purchases": "Purchases: %s",
		"overview.net":       "Net cash flow: %s",
		"overview.truncated": "Figures cover only the first %s documents",
	},
}
