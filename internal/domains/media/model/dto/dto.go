package dto

import (
	"mime/multipart"
	"path"

	"hotel/infras/cloudinary"
)

// Folders that uploads may be filed under.
const (
	FolderRooms        = "rooms"
	FolderHotels       = "hotels"
	FolderPackages     = "packages"
	FolderServices     = "services"
	FolderOffers       = "offers"
	FolderTestimonials = "testimonials"
	FolderBlogs        = "blogs"
	FolderStaff        = "staff"
	FolderAvatars      = "avatars"
)

type UploadRequest struct {
	File   multipart.FileHeader `json:"file"   validate:"required,mimetypes=image/jpeg image/png image/webp image/gif,maxfilesize=10"`
	Folder string               `json:"folder" validate:"omitempty,oneof=rooms hotels packages services offers testimonials blogs staff avatars"`
}

// Destination joins the configured root folder with the requested one.
func (u *UploadRequest) Destination(root string) string {
	return Destination(root, u.Folder)
}

func Destination(root, folder string) string {
	if folder == "" {
		return root
	}

	return path.Join(root, folder)
}

type SignatureRequest struct {
	Folder string `json:"folder" validate:"omitempty,oneof=rooms hotels packages services offers testimonials blogs staff avatars"`
}

type DeleteRequest struct {
	PublicID string `json:"public_id" validate:"required,notblank"`
}

// UploadResponse carries the permanent URL of the file. Clients store it on
// the row as is.
type UploadResponse struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

func (u *UploadResponse) FromAsset(asset cloudinary.Asset) {
	u.URL = asset.URL
	u.PublicID = asset.PublicID
}

type SignatureResponse struct {
	Timestamp int64  `json:"timestamp"`
	Signature string `json:"signature"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder"`
}

func (s *SignatureResponse) FromSignature(signature cloudinary.Signature) {
	s.Timestamp = signature.Timestamp
	s.Signature = signature.Signature
	s.APIKey = signature.APIKey
	s.CloudName = signature.CloudName
	s.Folder = signature.Folder
}
