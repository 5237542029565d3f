package renderers

import (
	"fmt"
	"sort"
	"strings"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/adapters"
	"netstate-agent/pkg/resolvconf"
)

// commitFiles는 변환 결과(경로 → 내용)를 대상 파일 시스템에 기록합니다.
// 경로 정렬 순서로 기록하여 실행 간 순서가 일정합니다.
func commitFiles(fs interfaces.FileSystem, files map[string]string) error {
	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := fs.WriteFile(path, []byte(files[path]), constants.ConfigFilePermission); err != nil {
			return errors.NewSystemError(fmt.Sprintf("failed to write %s", path), err)
		}
	}
	return nil
}

// renderDNS는 대상의 기존 resolv.conf에 전역 DNS 설정을 병합한 내용을 반환합니다.
// 기존 항목은 보존되고 새 항목은 뒤에 추가만 됩니다.
func renderDNS(fs interfaces.FileSystem, state *entities.NetworkState, target, commentSep string) (string, string) {
	dnsPath := adapters.TargetPath(target, constants.ResolvConfPath)

	rc := resolvconf.Parse("")
	if content, err := fs.ReadFile(dnsPath); err == nil {
		rc = resolvconf.Parse(string(content))
	}

	for _, ns := range state.DNSNameservers {
		rc.AddNameserver(ns)
	}
	for _, domain := range state.DNSSearchDomains {
		rc.AddSearchDomain(domain)
	}

	return dnsPath, Header(commentSep) + rc.String()
}

// hasGlobalDNS는 병합할 전역 DNS 설정이 있는지 확인합니다
func hasGlobalDNS(state *entities.NetworkState) bool {
	return len(state.DNSNameservers) > 0 || len(state.DNSSearchDomains) > 0
}

// dnsKey는 sysconfig 계열의 DNS1, DNS2, ... 키 이름을 만듭니다
func dnsKey(index int) string {
	return fmt.Sprintf("DNS%d", index+1)
}

// joinValues는 다중 값 필드를 공백으로 연결합니다
func joinValues(values []string) string {
	return strings.Join(values, " ")
}

// unknownSubnetError는 알 수 없는 서브넷 타입에 대한 치명적 오류를 만듭니다
func unknownSubnetError(ifaceName string, subnetType entities.SubnetType) error {
	return errors.NewValidationError(
		fmt.Sprintf("unknown subnet type %q on interface %s", subnetType, ifaceName), nil)
}
