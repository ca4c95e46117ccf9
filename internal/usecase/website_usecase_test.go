package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-site-api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebsite_FiltersDoctorsBySpecialty(t *testing.T) {
	u := NewWebsiteUsecase(quietLogger(), &fakeSnapshots{snapshot: practiceSnapshot()}, testChatConfig)

	resp, err := u.GetWebsite(context.Background(), "clinica-del-sol", "Cardiología")
	require.NoError(t, err)

	require.Len(t, resp.Doctors, 1)
	assert.Equal(t, "doc-1", resp.Doctors[0].ID)
	require.NotNil(t, resp.WhatsApp)
	assert.Equal(t, "https://wa.me/5491155550000?text=Hola", resp.WhatsApp.URL)
}

func TestWebsite_Errors(t *testing.T) {
	u := NewWebsiteUsecase(quietLogger(), &fakeSnapshots{err: repository.ErrNotFound}, testChatConfig)
	_, err := u.GetWebsite(context.Background(), "nadie", "")
	assert.ErrorIs(t, err, ErrPracticeNotFound)

	_, err = u.GetWebsite(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingSlug)

	u = NewWebsiteUsecase(quietLogger(), &fakeSnapshots{err: errors.New("timeout")}, testChatConfig)
	_, err = u.GetWebsite(context.Background(), "clinica-del-sol", "")
	assert.ErrorIs(t, err, ErrTransport)
}
