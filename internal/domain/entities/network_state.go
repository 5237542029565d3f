package entities

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// InterfaceType은 네트워크 인터페이스의 종류를 나타냅니다
type InterfaceType string

const (
	TypePhysical InterfaceType = "physical"
	TypeLoopback InterfaceType = "loopback"
	TypeBond     InterfaceType = "bond"
	TypeBridge   InterfaceType = "bridge"
	TypeVLAN     InterfaceType = "vlan"
)

// SubnetType은 서브넷의 주소 할당 방식을 나타냅니다
type SubnetType string

const (
	SubnetDHCP4   SubnetType = "dhcp4"
	SubnetDHCP6   SubnetType = "dhcp6"
	SubnetStatic  SubnetType = "static"
	SubnetStatic6 SubnetType = "static6"
)

var (
	ErrInvalidMacAddress    = errors.New("유효하지 않은 MAC 주소 형식")
	ErrDuplicateInterface   = errors.New("중복된 인터페이스 이름")
	ErrMissingAddress       = errors.New("static 서브넷에 주소가 없음")
	ErrUnknownInterfaceType = errors.New("알 수 없는 인터페이스 타입")
)

// IsDHCP는 서브넷이 DHCP 계열인지 확인합니다
func (t SubnetType) IsDHCP() bool {
	return strings.HasPrefix(string(t), "dhcp")
}

// IsStatic은 서브넷이 static 계열인지 확인합니다
func (t SubnetType) IsStatic() bool {
	return strings.HasPrefix(string(t), "static")
}

// IsIPv6는 서브넷이 IPv6 계열인지 확인합니다
func (t SubnetType) IsIPv6() bool {
	return t == SubnetDHCP6 || t == SubnetStatic6
}

// NormalizeSubnetType은 상위 파서가 넘겨주는 축약형("dhcp")을 정규화합니다
func NormalizeSubnetType(raw string) SubnetType {
	if raw == "dhcp" {
		return SubnetDHCP4
	}
	return SubnetType(raw)
}

// Route는 인터페이스에 속하는 하나의 경로 설정입니다
type Route struct {
	Network string
	Netmask string
	Gateway string
	Metric  int
}

// IsDefault는 기본 경로인지 확인합니다 (IPv4: 0.0.0.0/0.0.0.0, IPv6: ::/0)
func (r Route) IsDefault() bool {
	if r.Network == "::" && (r.Netmask == "0" || r.Netmask == "" || r.Netmask == "::") {
		return true
	}
	return r.Network == "0.0.0.0" && r.Netmask == "0.0.0.0"
}

// IsIPv6는 IPv6 경로인지 확인합니다
func (r Route) IsIPv6() bool {
	return strings.Contains(r.Network, ":") || strings.Contains(r.Gateway, ":")
}

// Subnet은 인터페이스에 할당되는 하나의 서브넷 설정입니다
type Subnet struct {
	Type           SubnetType
	Address        string // static 타입일 때 필수 (e.g. "192.168.1.10" 또는 "192.168.1.10/24")
	Netmask        string
	Gateway        string
	DNSNameservers []string
	DNSSearch      []string
	Routes         []Route
}

// Interface는 하나의 네트워크 인터페이스에 대한 백엔드 독립적인 기술입니다
type Interface struct {
	Name       string
	Type       InterfaceType
	MACAddress string
	MTU        int
	Subnets    []Subnet
}

// NetworkState는 렌더러와 액티베이터가 소비하는 목표 네트워크 상태입니다.
// 상위 파싱 단계에서 한 번 생성되며 이후에는 수정되지 않습니다.
type NetworkState struct {
	Interfaces       []Interface
	DNSNameservers   []string
	DNSSearchDomains []string
}

var macRegex = regexp.MustCompile(`^([0-9A-Fa-f]{2}[:-]){5}([0-9A-Fa-f]{2})$`)

var knownInterfaceTypes = map[InterfaceType]bool{
	TypePhysical: true,
	TypeLoopback: true,
	TypeBond:     true,
	TypeBridge:   true,
	TypeVLAN:     true,
}

var knownSubnetTypes = map[SubnetType]bool{
	SubnetDHCP4:   true,
	SubnetDHCP6:   true,
	SubnetStatic:  true,
	SubnetStatic6: true,
}

// KnownSubnetType은 서브넷 타입이 알려진 값인지 확인합니다
func KnownSubnetType(t SubnetType) bool {
	return knownSubnetTypes[t]
}

// Validate는 NetworkState의 유효성을 검증합니다
func (s *NetworkState) Validate() error {
	seen := make(map[string]bool, len(s.Interfaces))
	for _, iface := range s.Interfaces {
		if iface.Name == "" {
			return fmt.Errorf("이름이 없는 인터페이스가 있음")
		}
		if seen[iface.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateInterface, iface.Name)
		}
		seen[iface.Name] = true

		if !knownInterfaceTypes[iface.Type] {
			return fmt.Errorf("%w: %s (인터페이스 %s)", ErrUnknownInterfaceType, iface.Type, iface.Name)
		}
		if iface.MACAddress != "" && !macRegex.MatchString(iface.MACAddress) {
			return fmt.Errorf("%w: %s (인터페이스 %s)", ErrInvalidMacAddress, iface.MACAddress, iface.Name)
		}
		for _, subnet := range iface.Subnets {
			if subnet.Type.IsStatic() && subnet.Address == "" {
				return fmt.Errorf("%w: 인터페이스 %s", ErrMissingAddress, iface.Name)
			}
		}
	}
	return nil
}

// InterfaceNames는 모든 인터페이스 이름 목록을 선언 순서대로 반환합니다.
// 루프백 제외가 필요하면 호출 측에서 NonLoopbackNames를 사용합니다.
func (s *NetworkState) InterfaceNames() []string {
	names := make([]string, 0, len(s.Interfaces))
	for _, iface := range s.Interfaces {
		names = append(names, iface.Name)
	}
	return names
}

// NonLoopbackNames는 루프백을 제외한 인터페이스 이름 목록을 반환합니다
func (s *NetworkState) NonLoopbackNames() []string {
	names := make([]string, 0, len(s.Interfaces))
	for _, iface := range s.Interfaces {
		if iface.Type == TypeLoopback {
			continue
		}
		names = append(names, iface.Name)
	}
	return names
}
