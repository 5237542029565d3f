package resolvconf

import (
	"strings"
)

// ResolvConf는 resolv.conf 파일의 파싱된 내용을 담습니다.
// 기존 항목은 순서를 유지한 채 보존되고 새 항목은 뒤에 추가만 됩니다.
// 수동으로 편집된 파일을 덮어쓰지 않기 위해 중복 제거는 하지 않습니다.
type ResolvConf struct {
	Nameservers   []string
	SearchDomains []string
	// 해석하지 않는 options/sortlist 등의 행은 그대로 보존합니다
	ExtraLines []string
}

// Parse는 resolv.conf 내용을 파싱합니다. 주석 행은 버려집니다.
func Parse(content string) *ResolvConf {
	rc := &ResolvConf{}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		fields := strings.Fields(trimmed)
		switch fields[0] {
		case "nameserver":
			if len(fields) >= 2 {
				rc.Nameservers = append(rc.Nameservers, fields[1])
			}
		case "search", "domain":
			rc.SearchDomains = append(rc.SearchDomains, fields[1:]...)
		default:
			rc.ExtraLines = append(rc.ExtraLines, trimmed)
		}
	}

	return rc
}

// AddNameserver는 네임서버를 목록 끝에 추가합니다
func (rc *ResolvConf) AddNameserver(address string) {
	rc.Nameservers = append(rc.Nameservers, address)
}

// AddSearchDomain은 검색 도메인을 목록 끝에 추가합니다
func (rc *ResolvConf) AddSearchDomain(domain string) {
	rc.SearchDomains = append(rc.SearchDomains, domain)
}

// String은 resolv.conf 형식으로 직렬화합니다
func (rc *ResolvConf) String() string {
	var buf strings.Builder

	if len(rc.SearchDomains) > 0 {
		buf.WriteString("search " + strings.Join(rc.SearchDomains, " ") + "\n")
	}
	for _, ns := range rc.Nameservers {
		buf.WriteString("nameserver " + ns + "\n")
	}
	for _, line := range rc.ExtraLines {
		buf.WriteString(line + "\n")
	}

	return buf.String()
}
