package db

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Position 은 그룹 내 순번(순)입니다.
// 과거 API 는 구성원에는 숫자, 심방 기록에는 문자열("1")을 사용했기 때문에
// 입력은 두 형식을 모두 받고 출력은 항상 숫자로 통일합니다.
type Position int

func (p *Position) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*p = 0
		return nil
	}

	if trimmed[0] == '"' {
		var raw string
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			*p = 0
			return nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid position %q", raw)
		}
		*p = Position(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("invalid position %s", string(trimmed))
	}
	*p = Position(n)
	return nil
}
