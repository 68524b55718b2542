package models

// FileKind classifies an asset file.
type FileKind string

const (
	// KindModel is a 3D model file.
	KindModel FileKind = "model"
	// KindImage is a preview image file.
	KindImage FileKind = "image"
)

// ModelFileDescriptor describes one classified file inside a plate folder.
type ModelFileDescriptor struct {
	// FolderName is the plate folder (immediate child of the asset root).
	FolderName string `json:"folderName"`
	// FileName is the base name of the file.
	FileName string `json:"fileName"`
	// RelativePath is the slash-separated path from the asset root.
	RelativePath string `json:"relativePath"`
	// Kind is model or image.
	Kind FileKind `json:"kind"`
}
