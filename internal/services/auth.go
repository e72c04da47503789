package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"

	userrepo "github.com/yungbote/tubesort-backend/internal/data/repos/user"
	types "github.com/yungbote/tubesort-backend/internal/domain"
	apperrors "github.com/yungbote/tubesort-backend/internal/pkg/errors"
	"github.com/yungbote/tubesort-backend/internal/pkg/logger"
)

// GoogleScopes are requested on every sign-in; youtube.readonly lets the
// playlist sync reuse the sign-in token.
var GoogleScopes = []string{
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
	"https://www.googleapis.com/auth/youtube.readonly",
}

// AuthResult is what a completed sign-in hands back to the HTTP layer.
type AuthResult struct {
	User         *types.User
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	GoogleAuthURL() (url, state string)
	HandleGoogleCallback(ctx context.Context, code string) (*AuthResult, error)
	UpsertGoogleUser(ctx context.Context, identity *GoogleIdentity, token *oauth2.Token) (*types.User, error)
	CurrentUser(ctx context.Context, accessToken string) (*types.User, error)
	TokenSource(ctx context.Context, user *types.User) oauth2.TokenSource
}

type authService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo userrepo.UserRepo
	verifier OIDCVerifier
	oauth    *oauth2.Config
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo userrepo.UserRepo,
	verifier OIDCVerifier,
	clientID string,
	clientSecret string,
	redirectURI string,
) (AuthService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	if redirectURI == "" {
		return nil, fmt.Errorf("GOOGLE_REDIRECT_URI is required")
	}
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:       db,
		log:      serviceLog,
		userRepo: userRepo,
		verifier: verifier,
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURI,
			Scopes:       GoogleScopes,
			Endpoint:     google.Endpoint,
		},
	}, nil
}

func (as *authService) GoogleAuthURL() (string, string) {
	state := uuid.NewString()
	url := as.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, state
}

func (as *authService) HandleGoogleCallback(ctx context.Context, code string) (*AuthResult, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", apperrors.ErrInvalidArgument)
	}

	token, err := as.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	rawIDToken, _ := token.Extra("id_token").(string)
	identity, err := as.verifier.VerifyGoogleIDToken(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}
	if identity.Email == "" {
		return nil, fmt.Errorf("%w: id_token carries no email", apperrors.ErrUnauthorized)
	}

	user, err := as.UpsertGoogleUser(ctx, identity, token)
	if err != nil {
		return nil, err
	}

	as.log.Info("google sign-in completed", "user_id", user.ID)
	return &AuthResult{
		User:         user,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}, nil
}

// UpsertGoogleUser matches on email: a returning account gets its profile and
// tokens refreshed, a new one gets a row. Token expiry is not recorded.
func (as *authService) UpsertGoogleUser(ctx context.Context, identity *GoogleIdentity, token *oauth2.Token) (*types.User, error) {
	var result *types.User

	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userRepo.GetByEmail(ctx, tx, identity.Email)
		if err != nil {
			return fmt.Errorf("lookup by email: %w", err)
		}

		if existing == nil {
			created, err := as.userRepo.Create(ctx, tx, &types.User{
				Email:               identity.Email,
				GoogleID:            identity.Sub,
				Name:                identity.Name,
				PictureURL:          identity.PictureURL,
				YoutubeAccessToken:  token.AccessToken,
				YoutubeRefreshToken: token.RefreshToken,
			})
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}
			result = created
			return nil
		}

		upd := userrepo.Update{
			GoogleID:           &identity.Sub,
			Name:               &identity.Name,
			PictureURL:         &identity.PictureURL,
			YoutubeAccessToken: &token.AccessToken,
		}
		if token.RefreshToken != "" {
			upd.YoutubeRefreshToken = &token.RefreshToken
		}
		updated, err := as.userRepo.Update(ctx, tx, existing.ID, upd)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (as *authService) CurrentUser(ctx context.Context, accessToken string) (*types.User, error) {
	if accessToken == "" {
		return nil, apperrors.ErrUnauthorized
	}
	user, err := as.userRepo.GetByAccessToken(ctx, nil, accessToken)
	if err != nil {
		return nil, fmt.Errorf("lookup by access token: %w", err)
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// TokenSource wraps the stored tokens for API clients. Expiry is not stored,
// so the token is presented as-is and never proactively refreshed.
func (as *authService) TokenSource(ctx context.Context, user *types.User) oauth2.TokenSource {
	return as.oauth.TokenSource(ctx, &oauth2.Token{
		AccessToken:  user.YoutubeAccessToken,
		RefreshToken: user.YoutubeRefreshToken,
	})
}
