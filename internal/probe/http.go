package probe

import (
	"net"
	"net/http"
	"time"
)

// HTTPFetcher 자체 Transport를 소유하는 Fetcher 구현체입니다.
//
// 헬스체크 요청 하나 동안 모든 프로브가 공유하고, 요청이 끝나면 Close로 유휴 연결을 정리합니다.
type HTTPFetcher struct {
	client    *http.Client
	transport *http.Transport
	userAgent string
}

// HTTPOption HTTPFetcher 설정을 변경하는 함수입니다.
type HTTPOption func(*HTTPFetcher)

// WithUserAgent 요청에 User-Agent 헤더가 없을 때 사용할 값을 설정합니다.
func WithUserAgent(ua string) HTTPOption {
	return func(h *HTTPFetcher) {
		h.userAgent = ua
	}
}

// WithMaxConnsPerHost 호스트당 최대 연결 수를 설정합니다. (0: 무제한)
func WithMaxConnsPerHost(n int) HTTPOption {
	return func(h *HTTPFetcher) {
		h.transport.MaxConnsPerHost = n
	}
}

// WithTLSHandshakeTimeout TLS 핸드셰이크 타임아웃을 설정합니다.
func WithTLSHandshakeTimeout(d time.Duration) HTTPOption {
	return func(h *HTTPFetcher) {
		h.transport.TLSHandshakeTimeout = d
	}
}

// NewHTTPFetcher 새로운 HTTPFetcher를 생성합니다.
//
// 클라이언트 전체 타임아웃은 설정하지 않습니다. 프로브별 타임아웃은 요청 Context로 적용됩니다.
func NewHTTPFetcher(opts ...HTTPOption) *HTTPFetcher {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	h := &HTTPFetcher{
		client:    &http.Client{Transport: transport},
		transport: transport,
	}
	for _, opt := range opts {
		opt(h)
	}

	return h
}

func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if h.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return h.client.Do(req)
}

// Close 유휴 연결을 모두 닫습니다.
func (h *HTTPFetcher) Close() error {
	h.transport.CloseIdleConnections()
	return nil
}
