package probe

import (
	"context"
	"io"
	"net/http"
)

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get url로 GET 요청을 전송합니다. 요청 실패 시 응답이 있으면 Body를 비우고 닫습니다.
func Get(ctx context.Context, f Fetcher, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// maxDrainBytes 커넥션 재사용을 위해 읽어서 버릴 응답 본문의 최대 크기
const maxDrainBytes = 64 << 10

func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	_, _ = io.CopyN(io.Discard, body, maxDrainBytes)
	_ = body.Close()
}
