// Package graphfile 파일에 정의된 서비스 그래프를 읽어 들입니다. CLI와 스케줄러가 사용합니다.
package graphfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/darkkaiser/dag-health-monitor/internal/model"
	apperrors "github.com/darkkaiser/dag-health-monitor/internal/pkg/errors"
	"github.com/darkkaiser/dag-health-monitor/internal/pkg/validator"
)

// Load 확장자(.json, .yaml, .yml)에 따라 그래프 파일을 해석하고 구조를 검증합니다.
func Load(path string) (model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Graph{}, apperrors.Wrapf(err, apperrors.NotFound, "그래프 파일(%s)을 찾을 수 없습니다", path)
		}
		return model.Graph{}, apperrors.Wrapf(err, apperrors.System, "그래프 파일(%s)을 읽을 수 없습니다", path)
	}

	var g model.Graph
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		g, err = ParseYAML(data)
	case ".json":
		g, err = ParseJSON(data)
	default:
		return model.Graph{}, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 그래프 파일 형식입니다: %q (.json, .yaml, .yml)", ext)
	}
	if err != nil {
		return model.Graph{}, apperrors.Wrapf(err, apperrors.InvalidInput, "그래프 파일(%s) 해석 실패", path)
	}

	return g, nil
}

// ParseJSON JSON 그래프를 해석합니다. 알 수 없는 필드는 무시합니다.
func ParseJSON(data []byte) (model.Graph, error) {
	var g model.Graph
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return model.Graph{}, err
	}
	return g, validator.Struct(g)
}

// ParseYAML YAML 그래프를 해석합니다. 알 수 없는 필드는 무시합니다.
func ParseYAML(data []byte) (model.Graph, error) {
	var g model.Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return model.Graph{}, err
	}
	return g, validator.Struct(g)
}
