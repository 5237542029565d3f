package renderers

import (
	"context"
	"path"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/adapters"
)

// EtcnetRenderer는 /etc/net 레이아웃(BSD 스타일 etcnet)으로 설정을 렌더링합니다.
// 인터페이스별로 ifaces/<name>/options 파일 하나와 패밀리별 경로 파일을 생성합니다.
type EtcnetRenderer struct {
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	ifacesDir  string
}

// NewEtcnetRenderer는 새로운 EtcnetRenderer를 생성합니다
func NewEtcnetRenderer(fs interfaces.FileSystem, logger *logrus.Logger) *EtcnetRenderer {
	return &EtcnetRenderer{
		fileSystem: fs,
		logger:     logger,
		ifacesDir:  constants.EtcnetIfacesDir,
	}
}

// Render는 상태를 변환하여 대상 루트에 기록합니다
func (r *EtcnetRenderer) Render(ctx context.Context, state *entities.NetworkState, target string) error {
	files, err := r.Translate(state, target)
	if err != nil {
		return err
	}
	if err := commitFiles(r.fileSystem, files); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"backend": "etcnet",
		"files":   len(files),
		"target":  target,
	}).Info("etcnet 설정 렌더링 완료")
	return nil
}

// Translate는 상태를 파일 경로 → 내용 매핑으로 변환합니다. 파일은 기록하지 않습니다.
func (r *EtcnetRenderer) Translate(state *entities.NetworkState, target string) (map[string]string, error) {
	files := make(map[string]string)
	baseDir := adapters.TargetPath(target, r.ifacesDir)

	rendered := 0
	for _, iface := range state.Interfaces {
		if iface.Type == entities.TypeLoopback {
			continue
		}
		rendered++

		optionsCfg := NewConfigMap()
		routeCfg := NewRoute(iface.Name)

		// 백엔드 기본값: 부팅 시 활성화, DHCP, NetworkManager 비관리
		optionsCfg.Set("ONBOOT", true)
		optionsCfg.Set("DISABLED", false)
		optionsCfg.Set("NM_CONTROLLED", false)
		optionsCfg.Set("BOOTPROTO", "dhcp")
		optionsCfg.Set("TYPE", "eth")

		if iface.MACAddress != "" {
			optionsCfg.Set("HWADDR", iface.MACAddress)
		}
		if iface.MTU > 0 {
			optionsCfg.Set("MTU", iface.MTU)
		}

		if len(iface.Subnets) > 0 {
			// 최소 다이얼렉트이므로 첫 서브넷만 렌더링한다
			if err := r.renderSubnet(iface, iface.Subnets[0], optionsCfg, routeCfg); err != nil {
				return nil, err
			}
		}

		files[path.Join(baseDir, iface.Name, "options")] = optionsCfg.String()
		if routeCfg.HasIPv4() {
			files[path.Join(baseDir, iface.Name, "ipv4route")] = routeCfg.IPv4String()
		}
		if routeCfg.HasIPv6() {
			files[path.Join(baseDir, iface.Name, "ipv6route")] = routeCfg.IPv6String()
		}
	}

	// 루프백만 있는 상태는 아무 파일도 만들지 않는다
	if rendered > 0 && hasGlobalDNS(state) {
		// etcnet 계열의 resolv.conf는 ';' 주석을 사용한다
		dnsPath, content := renderDNS(r.fileSystem, state, target, ";")
		files[dnsPath] = content
	}

	return files, nil
}

// renderSubnet은 서브넷 하나를 options/route 설정으로 변환합니다
func (r *EtcnetRenderer) renderSubnet(iface entities.Interface, subnet entities.Subnet, optionsCfg *ConfigMap, routeCfg *Route) error {
	switch {
	case subnet.Type.IsDHCP():
		if subnet.Type.IsIPv6() {
			optionsCfg.Set("BOOTPROTO", "dhcp6")
		} else {
			optionsCfg.Set("BOOTPROTO", "dhcp")
		}
	case subnet.Type.IsStatic():
		optionsCfg.Set("BOOTPROTO", "static")
		optionsCfg.Set("IPADDR", subnet.Address)
		if subnet.Netmask != "" {
			optionsCfg.Set("NETMASK", subnet.Netmask)
		}
	default:
		return unknownSubnetError(iface.Name, subnet.Type)
	}

	if subnet.Gateway != "" {
		defaultRoute := entities.Route{Network: "0.0.0.0", Netmask: "0.0.0.0", Gateway: subnet.Gateway}
		if subnet.Type.IsIPv6() {
			defaultRoute = entities.Route{Network: "::", Netmask: "0", Gateway: subnet.Gateway}
		}
		if err := routeCfg.AddRoute(defaultRoute); err != nil {
			return err
		}
	}

	for _, rt := range subnet.Routes {
		if err := routeCfg.AddRoute(rt); err != nil {
			return err
		}
	}

	for i, ns := range subnet.DNSNameservers {
		optionsCfg.Set(dnsKey(i), ns)
	}
	if len(subnet.DNSSearch) > 0 {
		optionsCfg.Set("DOMAIN", joinValues(subnet.DNSSearch))
	}

	return nil
}
