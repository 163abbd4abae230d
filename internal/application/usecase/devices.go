package usecase

import (
	"context"

	"github.com/SamTV12345/PodFetch-sub001/internal/domain"

	"github.com/google/uuid"
)

type DeviceUseCase struct {
	devices domain.DeviceStore
}

func NewDeviceUseCase(ds domain.DeviceStore) *DeviceUseCase {
	return &DeviceUseCase{devices: ds}
}

func (uc *DeviceUseCase) Register(ctx context.Context, pathUser, sessionUser, deviceID, caption, kind string) (*domain.Device, error) {
	if pathUser != sessionUser {
		return nil, domain.ErrForbidden
	}
	if deviceID == "" {
		deviceID = uuid.NewString()
	}
	if caption == "" {
		caption = deviceID
	}
	return uc.devices.Register(ctx, &domain.Device{
		Username: pathUser,
		DeviceID: deviceID,
		Caption:  caption,
		Kind:     kind,
	})
}

func (uc *DeviceUseCase) List(ctx context.Context, pathUser, sessionUser string) ([]domain.Device, error) {
	if pathUser != sessionUser {
		return nil, domain.ErrForbidden
	}
	return uc.devices.List(ctx, pathUser)
}

// Каскад при удалении аккаунта
func (uc *DeviceUseCase) RemoveAll(ctx context.Context, pathUser, sessionUser string) error {
	if pathUser != sessionUser {
		return domain.ErrForbidden
	}
	return uc.devices.DeleteAll(ctx, pathUser)
}
