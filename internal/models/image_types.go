package models

// Image is the stored reference to an uploaded item image.
type Image struct {
	Filename     string `json:"filename" bson:"filename"`
	Path         string `json:"path" bson:"path"`
	ContentType  string `json:"contentType" bson:"contentType"`
	Size         int64  `json:"size" bson:"size"`
	OriginalName string `json:"originalName,omitempty" bson:"originalName,omitempty"`
}

// IsZero reports whether no file has been stored.
func (img Image) IsZero() bool {
	return img.Path == ""
}
