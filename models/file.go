package models

// LogoUpload is returned after a logo has been stored
type LogoUpload struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// LogoDelete is returned after a logo has been removed
type LogoDelete struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}
