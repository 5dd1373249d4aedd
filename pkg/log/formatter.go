package log

import "github.com/sirupsen/logrus"

// silentFormatter 기본 출력(io.Discard)에 대한 불필요한 포맷팅을 생략합니다. 실제 포맷팅은 hook에서 수행합니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}
