package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name LeagueDataSource --dir ../usecase --output usecase --outpkg usecasemock --filename league_data_source_mock.go
