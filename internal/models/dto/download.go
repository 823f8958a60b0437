package dto

// DownloadDTO is the payload written into the userinfo.txt attachment.
// Field names and their order match the historical download contract,
// password included.
type DownloadDTO struct {
	User     string `json:"user"`
	ID       string `json:"id"`
	Password string `json:"password"`
}
