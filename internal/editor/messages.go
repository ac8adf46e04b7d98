package editor

// Operator-facing text. The operators of these backups work in Vietnamese.
const (
	menuText = `
--- MENU ---
1. Xem danh sách bài viết
2. Sửa bài viết
3. Lưu và thoát
4. Đánh lại id bài viết từ 1 đến N
5. Xem danh sách sản phẩm
6. Sửa sản phẩm
7. Đánh lại id sản phẩm từ 1 đến N
8. Đánh lại id và slug cho permissions`

	promptChoice    = "Chọn: "
	promptNewsID    = "Nhập ID bài viết muốn sửa: "
	promptProductID = "Nhập ID sản phẩm muốn sửa: "
	promptField     = "Nhập tên trường muốn sửa: "
	promptValue     = "Nhập giá trị mới: "

	newsFieldsHint    = "Các trường có thể sửa: title, desc, content, thumbnail, published"
	productFieldsHint = "Các trường có thể sửa: name, price, desc, ..."

	msgCurrentValue   = "Giá trị hiện tại: %s"
	msgUpdated        = "Đã cập nhật."
	msgInvalidField   = "Trường không hợp lệ."
	msgInvalidID      = "ID không hợp lệ."
	msgSaveFailed     = "Lưu thất bại: %v"
	msgNewsNotFound   = "Không tìm thấy bài viết."
	msgProductMissing = "Không tìm thấy sản phẩm."
	msgInvalidChoice  = "Lựa chọn không hợp lệ."
	msgSaved          = "Đã lưu. Thoát."

	msgNewsRenumbered        = "Đã cập nhật lại id cho tất cả bài viết."
	msgProductsRenumbered    = "Đã cập nhật lại id cho tất cả sản phẩm."
	msgPermissionsRenumbered = "Đã cập nhật lại id và slug cho tất cả permissions."
)
