package mocks

//go:generate mockgen -destination=./mock_namespace.go -package=mocks github.com/JungleDome/FirScript/internal/engine Namespace,OutputGenerator,MetadataGenerator
