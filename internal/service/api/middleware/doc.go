// Package middleware API 서버의 Echo 미들웨어를 제공합니다.
//
// 권장 적용 순서: PanicRecovery, RequestID, HTTPLogger, Metrics, RateLimiting
package middleware
