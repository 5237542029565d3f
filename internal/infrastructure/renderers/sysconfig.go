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

// SysconfigRenderer는 RHEL 계열의 ifcfg-* 스크립트 형식으로 설정을 렌더링합니다
type SysconfigRenderer struct {
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	scriptsDir string
}

// NewSysconfigRenderer는 새로운 SysconfigRenderer를 생성합니다
func NewSysconfigRenderer(fs interfaces.FileSystem, logger *logrus.Logger) *SysconfigRenderer {
	return &SysconfigRenderer{
		fileSystem: fs,
		logger:     logger,
		scriptsDir: constants.SysconfigScriptsDir,
	}
}

// Render는 상태를 변환하여 대상 루트에 기록합니다
func (r *SysconfigRenderer) Render(ctx context.Context, state *entities.NetworkState, target string) error {
	files, err := r.Translate(state, target)
	if err != nil {
		return err
	}
	if err := commitFiles(r.fileSystem, files); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"backend": "sysconfig",
		"files":   len(files),
		"target":  target,
	}).Info("sysconfig 설정 렌더링 완료")
	return nil
}

// Translate는 상태를 파일 경로 → 내용 매핑으로 변환합니다
func (r *SysconfigRenderer) Translate(state *entities.NetworkState, target string) (map[string]string, error) {
	files := make(map[string]string)
	baseDir := adapters.TargetPath(target, r.scriptsDir)

	rendered := 0
	for _, iface := range state.Interfaces {
		if iface.Type == entities.TypeLoopback {
			continue
		}
		rendered++

		ifaceCfg := NewConfigMap()
		routeCfg := NewRoute(iface.Name)

		// 백엔드 기본값
		ifaceCfg.Set("DEVICE", iface.Name)
		ifaceCfg.Set("ONBOOT", true)
		ifaceCfg.Set("NM_CONTROLLED", false)
		ifaceCfg.Set("BOOTPROTO", "dhcp")

		if iface.MACAddress != "" {
			ifaceCfg.Set("HWADDR", iface.MACAddress)
		}
		if iface.MTU > 0 {
			ifaceCfg.Set("MTU", iface.MTU)
		}

		if len(iface.Subnets) > 0 {
			if err := r.renderSubnet(iface, iface.Subnets[0], ifaceCfg, routeCfg); err != nil {
				return nil, err
			}
		}

		files[path.Join(baseDir, "ifcfg-"+iface.Name)] = ifaceCfg.String()
		if routeCfg.HasIPv4() {
			files[path.Join(baseDir, "route-"+iface.Name)] = routeCfg.IPv4String()
		}
		if routeCfg.HasIPv6() {
			files[path.Join(baseDir, "route6-"+iface.Name)] = routeCfg.IPv6String()
		}
	}

	if rendered > 0 && hasGlobalDNS(state) {
		dnsPath, content := renderDNS(r.fileSystem, state, target, "#")
		files[dnsPath] = content
	}

	return files, nil
}

// renderSubnet은 서브넷 하나를 ifcfg/route 설정으로 변환합니다
func (r *SysconfigRenderer) renderSubnet(iface entities.Interface, subnet entities.Subnet, ifaceCfg *ConfigMap, routeCfg *Route) error {
	switch {
	case subnet.Type.IsDHCP():
		if subnet.Type.IsIPv6() {
			ifaceCfg.Set("BOOTPROTO", "none")
			ifaceCfg.Set("IPV6INIT", true)
			ifaceCfg.Set("DHCPV6C", true)
		} else {
			ifaceCfg.Set("BOOTPROTO", "dhcp")
		}
	case subnet.Type.IsStatic():
		ifaceCfg.Set("BOOTPROTO", "none")
		if subnet.Type.IsIPv6() {
			ifaceCfg.Set("IPV6INIT", true)
			ifaceCfg.Set("IPV6ADDR", subnet.Address)
		} else {
			ifaceCfg.Set("IPADDR", subnet.Address)
			if subnet.Netmask != "" {
				ifaceCfg.Set("NETMASK", subnet.Netmask)
			}
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
		ifaceCfg.Set(dnsKey(i), ns)
	}
	if len(subnet.DNSSearch) > 0 {
		ifaceCfg.Set("DOMAIN", joinValues(subnet.DNSSearch))
	}

	return nil
}
