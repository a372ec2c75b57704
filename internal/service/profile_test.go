package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"

	"github.com/factuurlijk/factuurlijk/internal/api/dto"
	"github.com/factuurlijk/factuurlijk/internal/domain/profile"
	ierr "github.com/factuurlijk/factuurlijk/internal/errors"
	"github.com/factuurlijk/factuurlijk/internal/s3"
	"github.com/factuurlijk/factuurlijk/internal/testutil"
	"github.com/factuurlijk/factuurlijk/internal/types"
)

type ProfileServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ProfileService
}

func TestProfileService(t *testing.T) {
	suite.Run(t, new(ProfileServiceSuite))
}

func (s *ProfileServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewProfileService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *ProfileServiceSuite) TestCreateProfile() {
	resp, err := s.service.CreateProfile(s.GetContext(), &dto.CreateProfileRequest{
		CompanyName: "Jansen Webdesign",
		Email:       "piet@jansenwebdesign.nl",
		IBAN:        "NL91ABNA0417164300",
	})
	s.NoError(err)
	s.Equal(types.PlanFree, resp.Plan)
	s.Equal(types.TemplateStyleMinimalist, resp.TemplateStyle)
	s.Require().NotNil(resp.RemainingFreeInvoices)
	s.Equal(types.FreePlanInvoiceLimit, *resp.RemainingFreeInvoices)
}

func (s *ProfileServiceSuite) TestCreateProfile_InvalidStyle() {
	_, err := s.service.CreateProfile(s.GetContext(), &dto.CreateProfileRequest{
		CompanyName:   "Jansen Webdesign",
		Email:         "piet@jansenwebdesign.nl",
		TemplateStyle: types.TemplateStyle("barok"),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ProfileServiceSuite) TestGetProfile_NotFound() {
	_, err := s.service.GetProfile(s.GetContext())
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *ProfileServiceSuite) TestUpdateProfile() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	style := types.TemplateStyleSidebar
	resp, err := s.service.UpdateProfile(s.GetContext(), &dto.UpdateProfileRequest{
		TemplateStyle: &style,
		Customizations: &profile.TemplateCustomizations{
			PrimaryColor: "#2d6a4f",
		},
		InvoiceFooterText: lo.ToPtr("Betaal op {iban} t.n.v. {name}"),
	})
	s.NoError(err)
	s.Equal(types.TemplateStyleSidebar, resp.TemplateStyle)
	s.Require().NotNil(resp.Customizations)
	s.Equal("#2d6a4f", resp.Customizations.PrimaryColor)
	s.Equal("Betaal op {iban} t.n.v. {name}", resp.InvoiceFooterText)
}

func (s *ProfileServiceSuite) TestProfileResponse_RemainingClampedToZero() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, types.FreePlanInvoiceLimit+1)

	resp, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)
	s.Require().NotNil(resp.RemainingFreeInvoices)
	s.Equal(0, *resp.RemainingFreeInvoices)
}

func (s *ProfileServiceSuite) TestProfileResponse_ProHasNoRemaining() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanPro, 10)

	resp, err := s.service.GetProfile(s.GetContext())
	s.NoError(err)
	s.Nil(resp.RemainingFreeInvoices)
}

func (s *ProfileServiceSuite) TestUploadLogo() {
	prof := seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	resp, err := s.service.UploadLogo(s.GetContext(), []byte("fake-png-bytes"))
	s.NoError(err)
	s.Equal(prof.ID, resp.LogoURL)

	data, err := s.GetBlobStore().GetObject(s.GetContext(), prof.ID, s3.ObjectTypeLogo)
	s.NoError(err)
	s.Equal([]byte("fake-png-bytes"), data)
}

func (s *ProfileServiceSuite) TestUploadLogo_Empty() {
	seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	_, err := s.service.UploadLogo(s.GetContext(), nil)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *ProfileServiceSuite) TestGetLogoUrl() {
	prof := seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)

	_, err := s.service.GetLogoUrl(s.GetContext())
	s.Error(err)
	s.True(ierr.IsNotFound(err))

	_, err = s.service.UploadLogo(s.GetContext(), []byte("fake-png-bytes"))
	s.Require().NoError(err)

	resp, err := s.service.GetLogoUrl(s.GetContext())
	s.NoError(err)
	s.Contains(resp.Url, "https://blob.test/")
	s.Contains(resp.Url, prof.ID)
}

func (s *ProfileServiceSuite) TestGetLogoUrl_PublicURLPassedThrough() {
	prof := seedProfile(&s.BaseServiceTestSuite, types.PlanFree, 0)
	prof.LogoURL = "https://example.test/logo.png"
	s.Require().NoError(s.GetStores().ProfileRepo.Update(s.GetContext(), prof))

	resp, err := s.service.GetLogoUrl(s.GetContext())
	s.NoError(err)
	s.Equal("https://example.test/logo.png", resp.Url)
}
