package service

import (
	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	issuer   TokenIssuer
	sso      SSOProvider
	events   EventPublisher
	paging   config.PagingConfig
}

func NewServices(
	stores *store.Stores,
	txRunner TxRunner,
	issuer TokenIssuer,
	sso SSOProvider,
	events EventPublisher,
	paging config.PagingConfig,
) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		issuer:   issuer,
		sso:      sso,
		events:   events,
		paging:   paging,
	}
}

func (s *Services) Workspaces() WorkspaceService {
	return NewWorkspaceService(
		s.stores.Workspaces(),
		s.stores.Users(),
		s.stores.WorkspaceEventLogs(),
		s.events,
		s.paging,
	)
}

func (s *Services) Users() UserService {
	return NewUserService(s.stores.Users(), s.stores.Roles())
}

func (s *Services) Auth() AuthService {
	return NewAuthService(
		s.txRunner,
		s.stores.Users(),
		s.stores.Tokens(),
		s.issuer,
		s.sso,
	)
}
