package renderers

import (
	"path"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/adapters"
)

// 가용성 프로브들. 대상 루트 아래의 필수 실행 파일/설정 디렉토리 존재만 확인하며
// 부수 효과가 없으므로 호출 시마다 같은 파일 시스템 상태에 대해 같은 결과를 돌려줍니다.
// 액티베이터 레지스트리도 같은 프로브를 공유합니다.

var sbinPaths = []string{"/sbin", "/usr/sbin"}
var binPaths = []string{"/bin", "/usr/bin"}

// ENIAvailable은 클래식 ifupdown을 쓸 수 있는지 확인합니다
func ENIAvailable(fs interfaces.FileSystem, locator interfaces.CommandLocator, target string) bool {
	for _, tool := range []string{"ifup", "ifdown"} {
		if locator.Which(tool, sbinPaths, target) == "" {
			return false
		}
	}
	return fs.IsDir(adapters.TargetPath(target, constants.ENIDir))
}

// SysconfigAvailable은 ifcfg 스크립트 레이아웃을 쓸 수 있는지 확인합니다
func SysconfigAvailable(fs interfaces.FileSystem, locator interfaces.CommandLocator, target string) bool {
	return fs.IsDir(adapters.TargetPath(target, constants.SysconfigScriptsDir))
}

// NetplanAvailable은 netplan을 쓸 수 있는지 확인합니다
func NetplanAvailable(fs interfaces.FileSystem, locator interfaces.CommandLocator, target string) bool {
	if locator.Which("netplan", sbinPaths, target) == "" {
		return false
	}
	return fs.IsDir(adapters.TargetPath(target, constants.NetplanDir))
}

// etcnet 스크립트 세트. 전부 있어야 동작하는 레이아웃이다.
var etcnetScripts = []string{
	"functions",
	"functions-eth",
	"functions-ip",
	"functions-ipv4",
	"functions-ipv6",
	"functions-vlan",
	"ifdown",
}

// EtcnetAvailable은 etcnet 레이아웃을 쓸 수 있는지 확인합니다
func EtcnetAvailable(fs interfaces.FileSystem, locator interfaces.CommandLocator, target string) bool {
	for _, tool := range []string{"ifup", "ifdown"} {
		if locator.Which(tool, sbinPaths, target) == "" {
			return false
		}
	}
	for _, script := range etcnetScripts {
		if !fs.Exists(adapters.TargetPath(target, path.Join(constants.EtcnetScriptsDir, script))) {
			return false
		}
	}
	return true
}

// NetworkdAvailable은 systemd-networkd를 쓸 수 있는지 확인합니다
func NetworkdAvailable(fs interfaces.FileSystem, locator interfaces.CommandLocator, target string) bool {
	if locator.Which("networkctl", binPaths, target) == "" {
		return false
	}
	return fs.IsDir(adapters.TargetPath(target, constants.NetworkdDir))
}

// NetworkManagerAvailable은 NetworkManager를 쓸 수 있는지 확인합니다.
// 렌더러 백엔드는 아니지만 액티베이터 레지스트리가 사용합니다.
func NetworkManagerAvailable(fs interfaces.FileSystem, locator interfaces.CommandLocator, target string) bool {
	if !fs.Exists(adapters.TargetPath(target, constants.NetworkManagerConfig)) {
		return false
	}
	return locator.Which("nmcli", binPaths, target) != ""
}
