package service

import (
	"context"
	"strings"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/s3"
)

// maxLogoSizeBytes bounds uploaded logo images.
const maxLogoSizeBytes = 2 << 20

type ProfileService interface {
	CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error)
	GetProfile(ctx context.Context) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	UploadLogo(ctx context.Context, data []byte) (*dto.ProfileResponse, error)
	GetLogoUrl(ctx context.Context) (*dto.LogoResponse, error)
}

type profileService struct {
	ServiceParams
}

func NewProfileService(params ServiceParams) ProfileService {
	return &profileService{
		ServiceParams: params,
	}
}

func (s *profileService) CreateProfile(ctx context.Context, req *dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prof := req.ToProfile(ctx)
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProfileRepo.Create(ctx, prof); err != nil {
		return nil, err
	}

	return dto.NewProfileResponse(prof), nil
}

func (s *profileService) GetProfile(ctx context.Context) (*dto.ProfileResponse, error) {
	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewProfileResponse(prof), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}

	req.Apply(prof)
	if err := prof.Validate(); err != nil {
		return nil, err
	}

	if err := s.ProfileRepo.Update(ctx, prof); err != nil {
		return nil, err
	}

	return dto.NewProfileResponse(prof), nil
}

// UploadLogo stores the image in the logo bucket keyed by the profile id and
// records that key as the profile's logo reference.
func (s *profileService) UploadLogo(ctx context.Context, data []byte) (*dto.ProfileResponse, error) {
	if len(data) == 0 {
		return nil, ierr.NewError("logo image is empty").
			WithHint("Upload a non-empty image file").
			Mark(ierr.ErrValidation)
	}
	if len(data) > maxLogoSizeBytes {
		return nil, ierr.NewError("logo image too large").
			WithHintf("Logo images are limited to %d bytes", maxLogoSizeBytes).
			Mark(ierr.ErrValidation)
	}
	if s.BlobStore == nil {
		return nil, ierr.NewError("blob storage is not configured").
			WithHint("Logo upload requires storage to be enabled").
			Mark(ierr.ErrInvalidOperation)
	}

	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.BlobStore.UploadObject(ctx, s3.NewLogoObject(prof.ID, data)); err != nil {
		return nil, err
	}

	prof.LogoURL = prof.ID
	if err := s.ProfileRepo.Update(ctx, prof); err != nil {
		return nil, err
	}

	return dto.NewProfileResponse(prof), nil
}

// GetLogoUrl returns a URL the client can load the logo from: the stored
// reference itself when it is already a URL, or a presigned link into the
// logo bucket.
func (s *profileService) GetLogoUrl(ctx context.Context) (*dto.LogoResponse, error) {
	prof, err := s.ProfileRepo.GetByOwner(ctx)
	if err != nil {
		return nil, err
	}

	if prof.LogoURL == "" {
		return nil, ierr.NewError("profile has no logo").
			WithHint("Upload a logo first").
			Mark(ierr.ErrNotFound)
	}

	if strings.HasPrefix(prof.LogoURL, "http://") ||
		strings.HasPrefix(prof.LogoURL, "https://") ||
		strings.HasPrefix(prof.LogoURL, "data:") {
		return &dto.LogoResponse{Url: prof.LogoURL}, nil
	}

	if s.BlobStore == nil {
		return nil, ierr.NewError("blob storage is not configured").
			WithHint("Logo download requires storage to be enabled").
			Mark(ierr.ErrInvalidOperation)
	}

	url, err := s.BlobStore.GetPresignedUrl(ctx, prof.LogoURL, s3.ObjectTypeLogo)
	if err != nil {
		return nil, err
	}

	return &dto.LogoResponse{Url: url}, nil
}
