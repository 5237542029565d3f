package renderers

import (
	"context"
	"fmt"
	"net"
	"path"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/adapters"
)

// netplan 출력 파일 이름. 배포판 기본 설정(50-cloud-init 등)과 충돌하지 않는 번호를 사용합니다.
const netplanFileName = "60-netstate.yaml"

// NetplanYAML은 netplan v2 문서의 직렬화 구조입니다
type NetplanYAML struct {
	Network NetplanNetwork `yaml:"network"`
}

// NetplanNetwork는 network 섹션입니다
type NetplanNetwork struct {
	Version   int                        `yaml:"version"`
	Ethernets map[string]NetplanEthernet `yaml:"ethernets,omitempty"`
}

// NetplanEthernet은 이더넷 장치 하나의 스탠자입니다
type NetplanEthernet struct {
	DHCP4       *bool               `yaml:"dhcp4,omitempty"`
	DHCP6       *bool               `yaml:"dhcp6,omitempty"`
	Match       *NetplanMatch       `yaml:"match,omitempty"`
	SetName     string              `yaml:"set-name,omitempty"`
	MTU         int                 `yaml:"mtu,omitempty"`
	Addresses   []string            `yaml:"addresses,omitempty"`
	Gateway4    string              `yaml:"gateway4,omitempty"`
	Gateway6    string              `yaml:"gateway6,omitempty"`
	Nameservers *NetplanNameservers `yaml:"nameservers,omitempty"`
}

// NetplanMatch는 장치 매칭 조건입니다
type NetplanMatch struct {
	MACAddress string `yaml:"macaddress,omitempty"`
}

// NetplanNameservers는 DNS 설정입니다
type NetplanNameservers struct {
	Addresses []string `yaml:"addresses,omitempty"`
	Search    []string `yaml:"search,omitempty"`
}

// NetplanRenderer는 Netplan v2 YAML 형식으로 설정을 렌더링합니다.
// 모든 인터페이스가 단일 YAML 파일 하나로 들어갑니다.
type NetplanRenderer struct {
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	netplanDir string
}

// NewNetplanRenderer는 새로운 NetplanRenderer를 생성합니다
func NewNetplanRenderer(fs interfaces.FileSystem, logger *logrus.Logger) *NetplanRenderer {
	return &NetplanRenderer{
		fileSystem: fs,
		logger:     logger,
		netplanDir: constants.NetplanDir,
	}
}

// Render는 상태를 변환하여 대상 루트에 기록합니다
func (r *NetplanRenderer) Render(ctx context.Context, state *entities.NetworkState, target string) error {
	files, err := r.Translate(state, target)
	if err != nil {
		return err
	}
	if err := commitFiles(r.fileSystem, files); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"backend": "netplan",
		"files":   len(files),
		"target":  target,
	}).Info("netplan 설정 렌더링 완료")
	return nil
}

// Translate는 상태를 파일 경로 → 내용 매핑으로 변환합니다
func (r *NetplanRenderer) Translate(state *entities.NetworkState, target string) (map[string]string, error) {
	ethernets := make(map[string]NetplanEthernet)

	for _, iface := range state.Interfaces {
		if iface.Type == entities.TypeLoopback {
			continue
		}

		eth, err := r.renderEthernet(iface)
		if err != nil {
			return nil, err
		}
		ethernets[iface.Name] = eth
	}

	files := make(map[string]string)
	if len(ethernets) == 0 {
		return files, nil
	}

	doc := NetplanYAML{
		Network: NetplanNetwork{
			Version:   2,
			Ethernets: ethernets,
		},
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.NewSystemError("netplan 설정 마샬링 실패", err)
	}

	configPath := path.Join(adapters.TargetPath(target, r.netplanDir), netplanFileName)
	files[configPath] = Header("#") + string(data)
	return files, nil
}

// renderEthernet은 인터페이스 하나의 ethernets 스탠자를 생성합니다.
// netplan은 주소 목록을 지원하므로 모든 서브넷을 렌더링합니다.
func (r *NetplanRenderer) renderEthernet(iface entities.Interface) (NetplanEthernet, error) {
	eth := NetplanEthernet{MTU: iface.MTU}

	if iface.MACAddress != "" {
		eth.Match = &NetplanMatch{MACAddress: strings.ToLower(iface.MACAddress)}
		eth.SetName = iface.Name
	}

	if len(iface.Subnets) == 0 {
		// 서브넷이 없으면 백엔드 기본값인 DHCP로 렌더링한다
		eth.DHCP4 = boolPtr(true)
		return eth, nil
	}

	var nameservers []string
	var search []string

	for _, subnet := range iface.Subnets {
		switch {
		case subnet.Type.IsDHCP():
			if subnet.Type.IsIPv6() {
				eth.DHCP6 = boolPtr(true)
			} else {
				eth.DHCP4 = boolPtr(true)
			}
		case subnet.Type.IsStatic():
			addr, err := cidrAddress(subnet)
			if err != nil {
				return NetplanEthernet{}, err
			}
			eth.Addresses = append(eth.Addresses, addr)
			if subnet.Gateway != "" {
				if subnet.Type.IsIPv6() {
					if eth.Gateway6 == "" {
						eth.Gateway6 = subnet.Gateway
					}
				} else if eth.Gateway4 == "" {
					eth.Gateway4 = subnet.Gateway
				}
			}
		default:
			return NetplanEthernet{}, unknownSubnetError(iface.Name, subnet.Type)
		}

		nameservers = append(nameservers, subnet.DNSNameservers...)
		search = append(search, subnet.DNSSearch...)
	}

	if len(nameservers) > 0 || len(search) > 0 {
		eth.Nameservers = &NetplanNameservers{Addresses: nameservers, Search: search}
	}

	return eth, nil
}

// cidrAddress는 주소와 넷마스크를 CIDR 표기로 합칩니다.
// 넷마스크는 점 표기("255.255.0.0")와 접두사 길이("16") 둘 다 받습니다.
// 넷마스크가 아예 없으면 주소 패밀리 기본 접두사를 쓰고, 해석할 수 없으면
// 검증 오류를 반환합니다.
func cidrAddress(subnet entities.Subnet) (string, error) {
	if strings.Contains(subnet.Address, "/") {
		return subnet.Address, nil
	}
	if subnet.Netmask == "" {
		if subnet.Type.IsIPv6() {
			return subnet.Address + "/64", nil
		}
		return subnet.Address + "/24", nil
	}
	if prefix, err := strconv.Atoi(subnet.Netmask); err == nil {
		if prefix >= 0 && prefix <= 128 {
			return subnet.Address + "/" + strconv.Itoa(prefix), nil
		}
	} else if mask := net.ParseIP(subnet.Netmask); mask != nil {
		if v4 := mask.To4(); v4 != nil {
			prefix, _ := net.IPMask(v4).Size()
			return subnet.Address + "/" + strconv.Itoa(prefix), nil
		}
	}
	return "", errors.NewValidationError(
		fmt.Sprintf("invalid netmask %q for address %s", subnet.Netmask, subnet.Address), nil)
}

func boolPtr(v bool) *bool {
	return &v
}
