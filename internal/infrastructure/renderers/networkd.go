package renderers

import (
	"context"
	"path"
	"strings"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/adapters"
)

// NetworkdRenderer는 systemd-networkd의 .network 유닛 형식으로 설정을 렌더링합니다
type NetworkdRenderer struct {
	fileSystem  interfaces.FileSystem
	logger      *logrus.Logger
	networkdDir string
}

// NewNetworkdRenderer는 새로운 NetworkdRenderer를 생성합니다
func NewNetworkdRenderer(fs interfaces.FileSystem, logger *logrus.Logger) *NetworkdRenderer {
	return &NetworkdRenderer{
		fileSystem:  fs,
		logger:      logger,
		networkdDir: constants.NetworkdDir,
	}
}

// Render는 상태를 변환하여 대상 루트에 기록합니다
func (r *NetworkdRenderer) Render(ctx context.Context, state *entities.NetworkState, target string) error {
	files, err := r.Translate(state, target)
	if err != nil {
		return err
	}
	if err := commitFiles(r.fileSystem, files); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"backend": "networkd",
		"files":   len(files),
		"target":  target,
	}).Info("networkd 설정 렌더링 완료")
	return nil
}

// Translate는 상태를 파일 경로 → 내용 매핑으로 변환합니다
func (r *NetworkdRenderer) Translate(state *entities.NetworkState, target string) (map[string]string, error) {
	files := make(map[string]string)
	baseDir := adapters.TargetPath(target, r.networkdDir)

	rendered := 0
	for _, iface := range state.Interfaces {
		if iface.Type == entities.TypeLoopback {
			continue
		}
		// networkd 다이얼렉트는 물리 인터페이스만 다룬다
		if iface.Type != entities.TypePhysical {
			continue
		}

		content, err := r.renderInterface(iface)
		if err != nil {
			return nil, err
		}
		files[path.Join(baseDir, iface.Name+".network")] = content
		rendered++
	}

	if rendered > 0 && hasGlobalDNS(state) {
		dnsPath, content := renderDNS(r.fileSystem, state, target, "#")
		files[dnsPath] = content
	}

	return files, nil
}

// renderInterface는 하나의 .network 유닛 내용을 생성합니다
func (r *NetworkdRenderer) renderInterface(iface entities.Interface) (string, error) {
	var buf strings.Builder
	buf.WriteString(Header("#"))

	buf.WriteString("[Match]\n")
	buf.WriteString("Name=" + iface.Name + "\n")
	if iface.MACAddress != "" {
		buf.WriteString("MACAddress=" + iface.MACAddress + "\n")
	}

	buf.WriteString("\n[Network]\n")

	if len(iface.Subnets) == 0 {
		// 서브넷이 없는 물리 인터페이스는 백엔드 기본값인 DHCP로 렌더링한다
		buf.WriteString("DHCP=ipv4\n")
		return buf.String(), nil
	}

	subnet := iface.Subnets[0]
	switch {
	case subnet.Type.IsDHCP():
		if subnet.Type.IsIPv6() {
			buf.WriteString("DHCP=ipv6\n")
		} else {
			buf.WriteString("DHCP=ipv4\n")
		}
	case subnet.Type.IsStatic():
		buf.WriteString("Address=" + subnet.Address + "\n")
	default:
		return "", unknownSubnetError(iface.Name, subnet.Type)
	}

	// 서브넷 범위의 게이트웨이/DNS는 값마다 한 줄씩 반복 지시어로 낸다
	if subnet.Gateway != "" {
		buf.WriteString("Gateway=" + subnet.Gateway + "\n")
	}
	for _, ns := range subnet.DNSNameservers {
		buf.WriteString("DNS=" + ns + "\n")
	}
	for _, domain := range subnet.DNSSearch {
		buf.WriteString("Domains=" + domain + "\n")
	}

	return buf.String(), nil
}
