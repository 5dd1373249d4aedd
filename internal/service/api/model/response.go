// Package model API 응답 본문 타입을 정의합니다. 헬스체크 리포트 자체는 internal/model을 그대로 사용합니다.
package model

// ErrorResponse 모든 에러 응답의 본문
type ErrorResponse struct {
	ResultCode int    `json:"result_code" example:"404"`
	Message    string `json:"message" example:"Health check record not found"`
}

// RootResponse GET /api/ 응답
type RootResponse struct {
	Message string `json:"message" example:"DAG Health Monitoring Service"`
	Version string `json:"version" example:"v1.0.0"`
}

// HealthResponse GET /health 응답
type HealthResponse struct {
	Status       string                      `json:"status" example:"healthy"`
	Uptime       int64                       `json:"uptime" example:"3600"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// DependencyStatus 외부 의존성 하나의 상태
type DependencyStatus struct {
	Status  string `json:"status" example:"healthy"`
	Message string `json:"message,omitempty"`
}

// VersionResponse GET /version 응답
type VersionResponse struct {
	Version   string `json:"version" example:"v1.0.0"`
	Commit    string `json:"commit" example:"f25b8bf"`
	BuildDate string `json:"build_date" example:"2026-05-01T00:00:00Z"`
	GoVersion string `json:"go_version" example:"go1.24.0"`
	Dirty     bool   `json:"dirty,omitempty"`
}
