// Package mocks provides gomock implementations of the repository and auth ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	servers := mocks.NewMockServerRepository(ctrl)
//	servers.EXPECT().GetByID(gomock.Any(), int64(42)).Return(srv, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=server_repository_mock.go github.com/target/serverboard/internal/core ServerRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=member_repository_mock.go github.com/target/serverboard/internal/core MemberRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=timetable_repository_mock.go github.com/target/serverboard/internal/core TimetableRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=game_repository_mock.go github.com/target/serverboard/internal/core GameRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/target/serverboard/internal/core CacheRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=auth_ports_mock.go github.com/target/serverboard/internal/ports LoginProvider,SessionStore,RoleMapper
