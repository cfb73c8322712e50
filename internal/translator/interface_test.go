package translator_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Gajjar-Mohit/backend/internal/translator"
	_ "github.com/Gajjar-Mohit/backend/internal/translator/providers/google"
	_ "github.com/Gajjar-Mohit/backend/internal/translator/providers/googlecloud"
	_ "github.com/Gajjar-Mohit/backend/internal/translator/providers/openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	initErr error
}

func (s *stubProvider) Initialize(map[string]string) error { return s.initErr }
func (s *stubProvider) GetName() string                    { return "stub" }
func (s *stubProvider) Translate(_ context.Context, req translator.TranslationRequest) (*translator.TranslationResponse, error) {
	return &translator.TranslationResponse{Text: req.Text, ProviderName: "stub"}, nil
}

func TestRegistry(t *testing.T) {
	assert.Subset(t, translator.ListProviders(), []string{"google", "googlecloud", "openai"})

	_, err := translator.GetProvider("missing", nil)
	assert.ErrorIs(t, err, translator.ErrUnknownProvider)

	p, err := translator.GetProvider("google", map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, "google", p.GetName())
}

func TestGetProviderRequiresKeys(t *testing.T) {
	_, err := translator.GetProvider("openai", map[string]string{})
	assert.Error(t, err)

	_, err = translator.GetProvider("googlecloud", map[string]string{})
	assert.Error(t, err)
}

func TestGetProviderInitializeError(t *testing.T) {
	translator.Register("broken-stub", func() translator.Provider {
		return &stubProvider{initErr: errors.New("boom")}
	})
	_, err := translator.GetProvider("broken-stub", nil)
	assert.EqualError(t, err, "boom")
}

func TestTimeout(t *testing.T) {
	assert.Equal(t, 3*time.Second, translator.Timeout(map[string]string{"timeout": "3s"}, time.Second))
	assert.Equal(t, time.Second, translator.Timeout(map[string]string{"timeout": "soon"}, time.Second))
	assert.Equal(t, time.Second, translator.Timeout(nil, time.Second))
}
