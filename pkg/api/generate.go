package api

//go:generate go tool oapi-codegen -config oapi-codegen.yaml ../../swagger/openapi.yaml
