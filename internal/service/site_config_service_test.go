package service

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/gateway"
	"github.com/academia-crecer/academia-api/internal/models"
)

type siteConfigRepoStub struct {
	config  *models.SiteConfig
	saveErr error
}

func (s *siteConfigRepoStub) Get(ctx context.Context) (models.SiteConfig, error) {
	if s.config == nil {
		return models.SiteConfig{}, gorm.ErrRecordNotFound
	}
	return *s.config, nil
}

func (s *siteConfigRepoStub) Save(ctx context.Context, config *models.SiteConfig) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	config.ID = models.SiteConfigRowID
	clone := *config
	s.config = &clone
	return nil
}

type configGatewayStub struct {
	row      gateway.Row
	fetchErr error
	pushErr  error
	pushed   []interface{}
}

func (g *configGatewayStub) Fetch(ctx context.Context) (gateway.Row, error) {
	return g.row, g.fetchErr
}

func (g *configGatewayStub) Push(ctx context.Context, payload interface{}) (gateway.Row, error) {
	if g.pushErr != nil {
		return nil, g.pushErr
	}
	g.pushed = append(g.pushed, payload)
	return gateway.Row{}, nil
}

type publisherStub struct {
	subjects []string
	payloads []interface{}
}

func (p *publisherStub) Publish(subject string, payload interface{}) error {
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, payload)
	return nil
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func configUpdateRequest() dto.SiteConfigUpdateRequest {
	return dto.SiteConfigUpdateRequest{
		HeroImages:     []string{"https://cdn.example.com/hero-1.jpg"},
		AboutImages:    []string{"https://cdn.example.com/about-1.jpg", "https://cdn.example.com/about-2.jpg"},
		WelcomeMessage: "<p>Bienvenidos</p>",
		LogoURL:        "https://cdn.example.com/logo.png",
		Instagram:      "@academia",
		WalletNumber:   "999888777",
	}
}

func TestSiteConfigGetServesDefaultsWhenEmpty(t *testing.T) {
	repo := &siteConfigRepoStub{}
	svc := NewSiteConfigService(repo, &configGatewayStub{}, nil, nil, nil, testValidator(), time.Minute, testLogger())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, resp.HeroImages)
	require.NotEmpty(t, resp.WelcomeMessage)
	require.Len(t, resp.AboutImages, models.AboutImageCount)
	require.NotEmpty(t, resp.IntroSlides)
}

func TestSiteConfigGetPrefersRemoteOverDefaults(t *testing.T) {
	repo := &siteConfigRepoStub{}
	remote := &configGatewayStub{row: gateway.Row{
		"id":              float64(1),
		"hero_images":     []interface{}{"https://cdn.example.com/remote-hero.jpg"},
		"about_images":    []interface{}{"https://cdn.example.com/remote-about.jpg"},
		"welcome_message": "Desde el remoto",
	}}
	svc := NewSiteConfigService(repo, remote, nil, nil, nil, testValidator(), time.Minute, testLogger())

	resp, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Desde el remoto", resp.WelcomeMessage)
	require.Equal(t, []string{"https://cdn.example.com/remote-hero.jpg"}, resp.HeroImages)

	// The remote bundle is adopted as the local row.
	require.NotNil(t, repo.config)
	require.Equal(t, "Desde el remoto", repo.config.WelcomeMessage)
}

func TestSiteConfigSetRoundTrip(t *testing.T) {
	repo := &siteConfigRepoStub{}
	remote := &configGatewayStub{}
	cache := testRedis(t)
	svc := NewSiteConfigService(repo, remote, cache, nil, nil, testValidator(), time.Minute, testLogger())

	saved, err := svc.Set(context.Background(), configUpdateRequest())
	require.NoError(t, err)
	require.True(t, saved.Synced)
	require.Len(t, remote.pushed, 1)
	require.Len(t, saved.Config.AboutImages, models.AboutImageCount)
	require.Equal(t, "", saved.Config.AboutImages[2])

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Equal(t, saved.Config.WelcomeMessage, got.WelcomeMessage)
}

func TestSiteConfigSetSanitizesWelcomeMessage(t *testing.T) {
	repo := &siteConfigRepoStub{}
	svc := NewSiteConfigService(repo, &configGatewayStub{}, nil, nil, nil, testValidator(), time.Minute, testLogger())

	req := configUpdateRequest()
	req.WelcomeMessage = "<script>alert('x')</script><p>Bienvenidos</p>"

	saved, err := svc.Set(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "<p>Bienvenidos</p>", saved.Config.WelcomeMessage)
}

func TestSiteConfigSetGatewayFailurePublishesReconcile(t *testing.T) {
	repo := &siteConfigRepoStub{}
	remote := &configGatewayStub{pushErr: errors.New("upstream 503")}
	publisher := &publisherStub{}
	svc := NewSiteConfigService(repo, remote, nil, publisher, nil, testValidator(), time.Minute, testLogger())

	saved, err := svc.Set(context.Background(), configUpdateRequest())
	require.NoError(t, err)
	require.False(t, saved.Synced)

	// The local save stands even though the remote push failed.
	require.NotNil(t, repo.config)
	require.Equal(t, []string{ReconcileSubject}, publisher.subjects)
}

func TestSiteConfigSetLocalFailureSurfaces(t *testing.T) {
	repo := &siteConfigRepoStub{saveErr: errors.New("disk full")}
	svc := NewSiteConfigService(repo, &configGatewayStub{}, nil, nil, nil, testValidator(), time.Minute, testLogger())

	_, err := svc.Set(context.Background(), configUpdateRequest())
	require.Error(t, err)
}

func TestSiteConfigSetAboutImagePadsSlots(t *testing.T) {
	repo := &siteConfigRepoStub{config: &models.SiteConfig{
		ID:          models.SiteConfigRowID,
		AboutImages: datatypes.NewJSONSlice([]string{"https://cdn.example.com/a0.jpg", "https://cdn.example.com/a1.jpg"}),
	}}
	svc := NewSiteConfigService(repo, &configGatewayStub{}, nil, nil, nil, testValidator(), time.Minute, testLogger())

	saved, err := svc.SetAboutImage(context.Background(), 3, "https://cdn.example.com/new.jpg")
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://cdn.example.com/a0.jpg",
		"https://cdn.example.com/a1.jpg",
		"",
		"https://cdn.example.com/new.jpg",
	}, saved.Config.AboutImages)
}

func TestSiteConfigSetAboutImageIndexOutOfRange(t *testing.T) {
	svc := NewSiteConfigService(&siteConfigRepoStub{}, &configGatewayStub{}, nil, nil, nil, testValidator(), time.Minute, testLogger())

	_, err := svc.SetAboutImage(context.Background(), models.AboutImageCount, "https://cdn.example.com/new.jpg")
	require.ErrorIs(t, err, ErrAboutImageIndex)
}
