package usecase

import (
	"context"
	"errors"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/cache"
	"github.com/SamTV12345/PodFetch-sub001/internal/infrastructure/security"

	"github.com/google/uuid"
)

type AuthUseCase struct {
	users        domain.UserStore
	devices      domain.DeviceStore
	sessions     *cache.SessionCache
	hasher       *security.PasswordHasher
	tokenManager *security.TokenManager
}

func NewAuthUseCase(
	us domain.UserStore,
	ds domain.DeviceStore,
	sc *cache.SessionCache,
	h *security.PasswordHasher,
	tm *security.TokenManager,
) *AuthUseCase {
	return &AuthUseCase{
		users:        us,
		devices:      ds,
		sessions:     sc,
		hasher:       h,
		tokenManager: tm,
	}
}

// Login попутно регистрирует устройство: клиенты логинятся при каждом
// старте, и это их первый (идемпотентный) register.
func (uc *AuthUseCase) Login(ctx context.Context, username, password, deviceID, caption, kind string) (string, string, error) {
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return "", "", errors.New("invalid credentials")
	}
	if err := uc.hasher.Compare(user.Password, password); err != nil {
		return "", "", errors.New("invalid credentials")
	}

	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	if caption == "" {
		caption = deviceID
	}
	if _, err := uc.devices.Register(ctx, &domain.Device{
		Username: user.Username,
		DeviceID: deviceID,
		Caption:  caption,
		Kind:     kind,
	}); err != nil {
		return "", "", err
	}

	return uc.generateAndSaveTokens(ctx, user.Username, deviceID)
}

func (uc *AuthUseCase) Refresh(ctx context.Context, oldRefreshToken string) (string, string, error) {
	username, deviceID, err := uc.tokenManager.ValidateRefreshToken(oldRefreshToken)
	if err != nil {
		return "", "", err
	}
	if _, err := uc.sessions.CheckRefresh(ctx, oldRefreshToken); err != nil {
		return "", "", errors.New("refresh token revoked")
	}
	if err := uc.sessions.DeleteRefresh(ctx, oldRefreshToken); err != nil {
		return "", "", err
	}

	return uc.generateAndSaveTokens(ctx, username, deviceID)
}

func (uc *AuthUseCase) generateAndSaveTokens(ctx context.Context, username, deviceID string) (string, string, error) {
	access, refresh, err := uc.tokenManager.Generate(username, deviceID)
	if err != nil {
		return "", "", err
	}
	if err := uc.sessions.SaveRefresh(ctx, username, refresh); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}
