package bootstrap

import (
	"tablebook/internal/pkg/config"
	"tablebook/internal/pkg/linktoken"

	"go.uber.org/fx"
)

var LinkTokenModule = fx.Module("linktoken",
	fx.Provide(
		NewLinkTokenService,
	),
)

func NewLinkTokenService(cfg config.Config) *linktoken.Service {
	return linktoken.NewService(cfg.LinkToken.Secret, cfg.LinkToken.DefaultTTL)
}
