package statefile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
)

// stateDocument는 상태 파일의 YAML 스키마입니다
type stateDocument struct {
	Network networkSection `yaml:"network"`
}

type networkSection struct {
	Version     int                 `yaml:"version"`
	Interfaces  []interfaceSection  `yaml:"interfaces"`
	Nameservers *nameserversSection `yaml:"nameservers"`
}

type interfaceSection struct {
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	MACAddress string          `yaml:"macaddress"`
	MTU        int             `yaml:"mtu"`
	Subnets    []subnetSection `yaml:"subnets"`
}

type subnetSection struct {
	Type           string         `yaml:"type"`
	Address        string         `yaml:"address"`
	Netmask        string         `yaml:"netmask"`
	Gateway        string         `yaml:"gateway"`
	DNSNameservers []string       `yaml:"dns_nameservers"`
	DNSSearch      []string       `yaml:"dns_search"`
	Routes         []routeSection `yaml:"routes"`
}

type routeSection struct {
	Network string `yaml:"network"`
	Netmask string `yaml:"netmask"`
	Gateway string `yaml:"gateway"`
	Metric  int    `yaml:"metric"`
}

type nameserversSection struct {
	Addresses []string `yaml:"addresses"`
	Search    []string `yaml:"search"`
}

// Loader는 YAML 상태 파일을 도메인 상태로 읽어들입니다 (원샷 모드용)
type Loader struct {
	fileSystem interfaces.FileSystem
}

// NewLoader는 새로운 Loader를 생성합니다
func NewLoader(fs interfaces.FileSystem) *Loader {
	return &Loader{fileSystem: fs}
}

// Load는 상태 파일을 읽고 파싱한 뒤 유효성을 검증합니다
func (l *Loader) Load(path string) (*entities.NetworkState, error) {
	content, err := l.fileSystem.ReadFile(path)
	if err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("상태 파일을 읽을 수 없음: %s", path))
	}
	return Parse(content)
}

// Parse는 YAML 상태 문서를 도메인 상태로 변환합니다
func Parse(content []byte) (*entities.NetworkState, error) {
	var doc stateDocument
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, errors.NewValidationError("상태 파일 파싱 실패", err)
	}

	if doc.Network.Version != 0 && doc.Network.Version != 1 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("지원하지 않는 상태 파일 버전: %d", doc.Network.Version), nil)
	}

	state := &entities.NetworkState{}

	for _, iface := range doc.Network.Interfaces {
		converted := entities.Interface{
			Name:       iface.Name,
			Type:       entities.InterfaceType(iface.Type),
			MACAddress: iface.MACAddress,
			MTU:        iface.MTU,
		}
		if converted.Type == "" {
			converted.Type = entities.TypePhysical
		}

		for _, subnet := range iface.Subnets {
			convertedSubnet := entities.Subnet{
				Type:           entities.NormalizeSubnetType(subnet.Type),
				Address:        subnet.Address,
				Netmask:        subnet.Netmask,
				Gateway:        subnet.Gateway,
				DNSNameservers: subnet.DNSNameservers,
				DNSSearch:      subnet.DNSSearch,
			}
			for _, route := range subnet.Routes {
				convertedSubnet.Routes = append(convertedSubnet.Routes, entities.Route{
					Network: route.Network,
					Netmask: route.Netmask,
					Gateway: route.Gateway,
					Metric:  route.Metric,
				})
			}
			converted.Subnets = append(converted.Subnets, convertedSubnet)
		}

		state.Interfaces = append(state.Interfaces, converted)
	}

	if doc.Network.Nameservers != nil {
		state.DNSNameservers = doc.Network.Nameservers.Addresses
		state.DNSSearchDomains = doc.Network.Nameservers.Search
	}

	if err := state.Validate(); err != nil {
		return nil, errors.NewValidationError("상태 파일이 유효하지 않음", err)
	}

	return state, nil
}
