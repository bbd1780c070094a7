package models

// UploadKind selects the validation rules and target folder of an upload
type UploadKind string

const (
	UploadKindImage     UploadKind = "image"
	UploadKindVideo     UploadKind = "video"
	UploadKindThumbnail UploadKind = "thumbnail"
)

// UploadedFile describes a stored upload
type UploadedFile struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}
