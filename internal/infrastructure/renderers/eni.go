package renderers

import (
	"context"
	"path"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/constants"
	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/interfaces"
	"netstate-agent/internal/infrastructure/adapters"
)

// ENIRenderer는 클래식 ifupdown의 /etc/network/interfaces.d 형식으로 설정을 렌더링합니다
type ENIRenderer struct {
	fileSystem interfaces.FileSystem
	logger     *logrus.Logger
	ifaceDir   string
}

// NewENIRenderer는 새로운 ENIRenderer를 생성합니다
func NewENIRenderer(fs interfaces.FileSystem, logger *logrus.Logger) *ENIRenderer {
	return &ENIRenderer{
		fileSystem: fs,
		logger:     logger,
		ifaceDir:   constants.ENIIfaceDir,
	}
}

// Render는 상태를 변환하여 대상 루트에 기록합니다
func (r *ENIRenderer) Render(ctx context.Context, state *entities.NetworkState, target string) error {
	files, err := r.Translate(state, target)
	if err != nil {
		return err
	}
	if err := commitFiles(r.fileSystem, files); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"backend": "eni",
		"files":   len(files),
		"target":  target,
	}).Info("ifupdown 설정 렌더링 완료")
	return nil
}

// Translate는 상태를 파일 경로 → 내용 매핑으로 변환합니다
func (r *ENIRenderer) Translate(state *entities.NetworkState, target string) (map[string]string, error) {
	files := make(map[string]string)
	baseDir := adapters.TargetPath(target, r.ifaceDir)

	rendered := 0
	for _, iface := range state.Interfaces {
		if iface.Type == entities.TypeLoopback {
			continue
		}

		content, err := r.renderInterface(iface)
		if err != nil {
			return nil, err
		}
		files[path.Join(baseDir, iface.Name+".cfg")] = content
		rendered++
	}

	if rendered > 0 && hasGlobalDNS(state) {
		dnsPath, content := renderDNS(r.fileSystem, state, target, "#")
		files[dnsPath] = content
	}

	return files, nil
}

// renderInterface는 인터페이스 하나의 스탠자를 생성합니다
func (r *ENIRenderer) renderInterface(iface entities.Interface) (string, error) {
	var buf strings.Builder
	buf.WriteString(Header("#"))
	buf.WriteString("auto " + iface.Name + "\n")

	if len(iface.Subnets) == 0 {
		// 서브넷이 없으면 백엔드 기본값인 DHCP로 렌더링한다
		buf.WriteString("iface " + iface.Name + " inet dhcp\n")
		return buf.String(), nil
	}

	subnet := iface.Subnets[0]
	family := "inet"
	if subnet.Type.IsIPv6() {
		family = "inet6"
	}

	switch {
	case subnet.Type.IsDHCP():
		buf.WriteString("iface " + iface.Name + " " + family + " dhcp\n")
	case subnet.Type.IsStatic():
		buf.WriteString("iface " + iface.Name + " " + family + " static\n")
		buf.WriteString("    address " + subnet.Address + "\n")
		if subnet.Netmask != "" {
			buf.WriteString("    netmask " + subnet.Netmask + "\n")
		}
	default:
		return "", unknownSubnetError(iface.Name, subnet.Type)
	}

	if subnet.Gateway != "" {
		buf.WriteString("    gateway " + subnet.Gateway + "\n")
	}
	if iface.MTU > 0 {
		buf.WriteString("    mtu " + strconv.Itoa(iface.MTU) + "\n")
	}
	if len(subnet.DNSNameservers) > 0 {
		buf.WriteString("    dns-nameservers " + joinValues(subnet.DNSNameservers) + "\n")
	}
	if len(subnet.DNSSearch) > 0 {
		buf.WriteString("    dns-search " + joinValues(subnet.DNSSearch) + "\n")
	}

	return buf.String(), nil
}
