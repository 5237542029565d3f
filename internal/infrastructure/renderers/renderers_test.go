package renderers

import (
	"context"
	"os"
	"strings"
	"testing"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFileSystem은 렌더링 결과를 메모리에 담아 검증하기 위한 인메모리 파일 시스템입니다
type fakeFileSystem struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newFakeFileSystem() *fakeFileSystem {
	return &fakeFileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (f *fakeFileSystem) ReadFile(path string) ([]byte, error) {
	data, ok := f.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (f *fakeFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	f.files[path] = data
	return nil
}

func (f *fakeFileSystem) Exists(path string) bool {
	if _, ok := f.files[path]; ok {
		return true
	}
	return f.dirs[path]
}

func (f *fakeFileSystem) IsDir(path string) bool {
	return f.dirs[path]
}

func (f *fakeFileSystem) MkdirAll(path string, perm os.FileMode) error {
	f.dirs[path] = true
	return nil
}

func (f *fakeFileSystem) Remove(path string) error {
	delete(f.files, path)
	return nil
}

func (f *fakeFileSystem) ListFiles(path string) ([]string, error) {
	var names []string
	for p := range f.files {
		if strings.HasPrefix(p, path+"/") {
			names = append(names, strings.TrimPrefix(p, path+"/"))
		}
	}
	return names, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return logger
}

// 테스트 공용 상태: DHCP 인터페이스 하나와 정적 인터페이스 하나
func sampleState() *entities.NetworkState {
	return &entities.NetworkState{
		Interfaces: []entities.Interface{
			{Name: "lo", Type: entities.TypeLoopback},
			{
				Name:       "eth0",
				Type:       entities.TypePhysical,
				MACAddress: "aa:bb:cc:dd:ee:ff",
				Subnets: []entities.Subnet{
					{Type: entities.SubnetDHCP4},
				},
			},
			{
				Name:       "eth1",
				Type:       entities.TypePhysical,
				MACAddress: "aa:bb:cc:dd:ee:01",
				MTU:        9000,
				Subnets: []entities.Subnet{
					{
						Type:           entities.SubnetStatic,
						Address:        "192.168.14.2",
						Netmask:        "255.255.255.0",
						Gateway:        "192.168.14.1",
						DNSNameservers: []string{"192.168.14.1"},
						DNSSearch:      []string{"corp.example"},
					},
				},
			},
		},
	}
}

func loopbackOnlyState() *entities.NetworkState {
	return &entities.NetworkState{
		Interfaces: []entities.Interface{
			{Name: "lo", Type: entities.TypeLoopback},
		},
		DNSNameservers: []string{"8.8.8.8"},
	}
}

func unknownSubnetState() *entities.NetworkState {
	return &entities.NetworkState{
		Interfaces: []entities.Interface{
			{
				Name: "eth0",
				Type: entities.TypePhysical,
				Subnets: []entities.Subnet{
					{Type: entities.SubnetType("manual")},
				},
			},
		},
	}
}

func TestENIRenderer_Translate(t *testing.T) {
	r := NewENIRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(sampleState(), "")
	require.NoError(t, err)
	require.Len(t, files, 2)

	dhcp := files["/etc/network/interfaces.d/eth0.cfg"]
	assert.Contains(t, dhcp, "auto eth0\n")
	assert.Contains(t, dhcp, "iface eth0 inet dhcp\n")
	assert.True(t, strings.HasPrefix(dhcp, "# Created by netstate-agent"))

	static := files["/etc/network/interfaces.d/eth1.cfg"]
	assert.Contains(t, static, "iface eth1 inet static\n")
	assert.Contains(t, static, "    address 192.168.14.2\n")
	assert.Contains(t, static, "    netmask 255.255.255.0\n")
	assert.Contains(t, static, "    gateway 192.168.14.1\n")
	assert.Contains(t, static, "    mtu 9000\n")
	assert.Contains(t, static, "    dns-nameservers 192.168.14.1\n")
	assert.Contains(t, static, "    dns-search corp.example\n")
}

func TestENIRenderer_LoopbackOnlyProducesNothing(t *testing.T) {
	r := NewENIRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(loopbackOnlyState(), "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestENIRenderer_UnknownSubnetType(t *testing.T) {
	r := NewENIRenderer(newFakeFileSystem(), testLogger())

	_, err := r.Translate(unknownSubnetState(), "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
	assert.Contains(t, err.Error(), `unknown subnet type "manual" on interface eth0`)
}

func TestENIRenderer_RenderWritesToTarget(t *testing.T) {
	fs := newFakeFileSystem()
	r := NewENIRenderer(fs, testLogger())

	require.NoError(t, r.Render(context.Background(), sampleState(), "/mnt/image"))

	assert.Contains(t, fs.files, "/mnt/image/etc/network/interfaces.d/eth0.cfg")
	assert.Contains(t, fs.files, "/mnt/image/etc/network/interfaces.d/eth1.cfg")
}

func TestSysconfigRenderer_Translate(t *testing.T) {
	r := NewSysconfigRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(sampleState(), "")
	require.NoError(t, err)

	dhcp := files["/etc/sysconfig/network-scripts/ifcfg-eth0"]
	assert.Contains(t, dhcp, "BOOTPROTO=dhcp\n")
	assert.Contains(t, dhcp, "DEVICE=eth0\n")
	assert.Contains(t, dhcp, "HWADDR=aa:bb:cc:dd:ee:ff\n")
	assert.Contains(t, dhcp, "NM_CONTROLLED=no\n")
	assert.Contains(t, dhcp, "ONBOOT=yes\n")

	static := files["/etc/sysconfig/network-scripts/ifcfg-eth1"]
	assert.Contains(t, static, "BOOTPROTO=none\n")
	assert.Contains(t, static, "IPADDR=192.168.14.2\n")
	assert.Contains(t, static, "NETMASK=255.255.255.0\n")
	assert.Contains(t, static, "MTU=9000\n")
	assert.Contains(t, static, "DNS1=192.168.14.1\n")
	assert.Contains(t, static, "DOMAIN=corp.example\n")

	// 게이트웨이는 경로 파일로 나간다
	route := files["/etc/sysconfig/network-scripts/route-eth1"]
	assert.Contains(t, route, "GATEWAY=192.168.14.1\n")
}

func TestSysconfigRenderer_DHCP6(t *testing.T) {
	state := &entities.NetworkState{
		Interfaces: []entities.Interface{
			{
				Name: "eth0",
				Type: entities.TypePhysical,
				Subnets: []entities.Subnet{
					{Type: entities.SubnetDHCP6},
				},
			},
		},
	}

	r := NewSysconfigRenderer(newFakeFileSystem(), testLogger())
	files, err := r.Translate(state, "")
	require.NoError(t, err)

	cfg := files["/etc/sysconfig/network-scripts/ifcfg-eth0"]
	assert.Contains(t, cfg, "BOOTPROTO=none\n")
	assert.Contains(t, cfg, "DHCPV6C=yes\n")
	assert.Contains(t, cfg, "IPV6INIT=yes\n")
}

func TestEtcnetRenderer_Translate(t *testing.T) {
	r := NewEtcnetRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(sampleState(), "")
	require.NoError(t, err)

	dhcp := files["/etc/net/ifaces/eth0/options"]
	assert.Contains(t, dhcp, "BOOTPROTO=dhcp\n")
	assert.Contains(t, dhcp, "DISABLED=no\n")
	assert.Contains(t, dhcp, "NM_CONTROLLED=no\n")
	assert.Contains(t, dhcp, "ONBOOT=yes\n")
	assert.Contains(t, dhcp, "TYPE=eth\n")

	static := files["/etc/net/ifaces/eth1/options"]
	assert.Contains(t, static, "BOOTPROTO=static\n")
	assert.Contains(t, static, "IPADDR=192.168.14.2\n")
	assert.Contains(t, static, "NETMASK=255.255.255.0\n")

	route := files["/etc/net/ifaces/eth1/ipv4route"]
	assert.Contains(t, route, "GATEWAY=192.168.14.1\n")

	// DHCP 인터페이스에는 경로 파일이 없다
	_, ok := files["/etc/net/ifaces/eth0/ipv4route"]
	assert.False(t, ok)
}

func TestEtcnetRenderer_GlobalDNSUsesSemicolonHeader(t *testing.T) {
	state := sampleState()
	state.DNSNameservers = []string{"8.8.8.8"}
	state.DNSSearchDomains = []string{"example.com"}

	r := NewEtcnetRenderer(newFakeFileSystem(), testLogger())
	files, err := r.Translate(state, "")
	require.NoError(t, err)

	dns := files["/etc/resolv.conf"]
	assert.True(t, strings.HasPrefix(dns, "; Created by netstate-agent"))
	assert.Contains(t, dns, "search example.com\n")
	assert.Contains(t, dns, "nameserver 8.8.8.8\n")
}

func TestNetworkdRenderer_Translate(t *testing.T) {
	r := NewNetworkdRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(sampleState(), "")
	require.NoError(t, err)
	require.Len(t, files, 2)

	dhcp := files["/etc/systemd/network/eth0.network"]
	assert.Contains(t, dhcp, "[Match]\nName=eth0\nMACAddress=aa:bb:cc:dd:ee:ff\n")
	assert.Contains(t, dhcp, "[Network]\nDHCP=ipv4\n")

	static := files["/etc/systemd/network/eth1.network"]
	assert.Contains(t, static, "Address=192.168.14.2\n")
	assert.Contains(t, static, "Gateway=192.168.14.1\n")
	assert.Contains(t, static, "DNS=192.168.14.1\n")
	assert.Contains(t, static, "Domains=corp.example\n")
}

func TestNetworkdRenderer_SkipsNonPhysical(t *testing.T) {
	state := &entities.NetworkState{
		Interfaces: []entities.Interface{
			{Name: "br0", Type: entities.TypeBridge},
			{Name: "eth0", Type: entities.TypePhysical},
		},
	}

	r := NewNetworkdRenderer(newFakeFileSystem(), testLogger())
	files, err := r.Translate(state, "")
	require.NoError(t, err)

	assert.Contains(t, files, "/etc/systemd/network/eth0.network")
	assert.NotContains(t, files, "/etc/systemd/network/br0.network")
}

func TestNetplanRenderer_Translate(t *testing.T) {
	r := NewNetplanRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(sampleState(), "")
	require.NoError(t, err)
	require.Len(t, files, 1)

	doc := files["/etc/netplan/60-netstate.yaml"]
	assert.True(t, strings.HasPrefix(doc, "# Created by netstate-agent"))
	assert.Contains(t, doc, "version: 2")
	assert.Contains(t, doc, "eth0:")
	assert.Contains(t, doc, "dhcp4: true")
	assert.Contains(t, doc, "macaddress: aa:bb:cc:dd:ee:ff")
	assert.Contains(t, doc, "set-name: eth0")
	assert.Contains(t, doc, "192.168.14.2/24")
	assert.Contains(t, doc, "gateway4: 192.168.14.1")
	assert.Contains(t, doc, "mtu: 9000")
}

func TestNetplanRenderer_LoopbackOnlyProducesNothing(t *testing.T) {
	r := NewNetplanRenderer(newFakeFileSystem(), testLogger())

	files, err := r.Translate(loopbackOnlyState(), "")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestCidrAddress(t *testing.T) {
	tests := []struct {
		name   string
		subnet entities.Subnet
		want   string
	}{
		{
			name:   "이미 CIDR 표기인 주소",
			subnet: entities.Subnet{Type: entities.SubnetStatic, Address: "10.0.0.2/16"},
			want:   "10.0.0.2/16",
		},
		{
			name:   "넷마스크를 접두사 길이로 변환",
			subnet: entities.Subnet{Type: entities.SubnetStatic, Address: "10.0.0.2", Netmask: "255.255.0.0"},
			want:   "10.0.0.2/16",
		},
		{
			name:   "넷마스크 없는 IPv4는 /24",
			subnet: entities.Subnet{Type: entities.SubnetStatic, Address: "10.0.0.2"},
			want:   "10.0.0.2/24",
		},
		{
			name:   "접두사 길이 형태의 넷마스크",
			subnet: entities.Subnet{Type: entities.SubnetStatic, Address: "10.0.0.2", Netmask: "16"},
			want:   "10.0.0.2/16",
		},
		{
			name:   "넷마스크 없는 IPv6는 /64",
			subnet: entities.Subnet{Type: entities.SubnetStatic6, Address: "2001:db8::2"},
			want:   "2001:db8::2/64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cidrAddress(tt.subnet)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// 해석할 수 없는 넷마스크는 기본 접두사로 덮어쓰지 않고 검증 오류를 냅니다
func TestCidrAddress_InvalidNetmask(t *testing.T) {
	for _, netmask := range []string{"garbage", "300"} {
		_, err := cidrAddress(entities.Subnet{
			Type:    entities.SubnetStatic,
			Address: "10.0.0.2",
			Netmask: netmask,
		})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	}
}

// 잘못된 넷마스크는 netplan 문서 변환 전체를 실패시킵니다
func TestNetplanRenderer_InvalidNetmaskFailsTranslate(t *testing.T) {
	r := NewNetplanRenderer(newFakeFileSystem(), testLogger())

	state := &entities.NetworkState{
		Interfaces: []entities.Interface{
			{
				Name: "eth0",
				Type: entities.TypePhysical,
				Subnets: []entities.Subnet{
					{Type: entities.SubnetStatic, Address: "10.0.0.2", Netmask: "garbage"},
				},
			},
		},
	}

	_, err := r.Translate(state, "")
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

// 기존 resolv.conf 내용은 보존되고 전역 설정은 뒤에 추가만 됩니다
func TestRenderDNS_AppendOnlyMerge(t *testing.T) {
	fs := newFakeFileSystem()
	fs.files["/etc/resolv.conf"] = []byte("search local.lan\nnameserver 10.0.0.1\noptions timeout:2\n")

	state := &entities.NetworkState{
		DNSNameservers:   []string{"8.8.8.8", "10.0.0.1"},
		DNSSearchDomains: []string{"example.com"},
	}

	path, content := renderDNS(fs, state, "", "#")
	assert.Equal(t, "/etc/resolv.conf", path)

	// 기존 항목이 먼저, 새 항목이 뒤에 온다. 중복 제거는 하지 않는다.
	searchIdx := strings.Index(content, "search local.lan example.com\n")
	firstNS := strings.Index(content, "nameserver 10.0.0.1\n")
	newNS := strings.Index(content, "nameserver 8.8.8.8\n")
	dupNS := strings.LastIndex(content, "nameserver 10.0.0.1\n")

	assert.GreaterOrEqual(t, searchIdx, 0)
	assert.Greater(t, newNS, firstNS)
	assert.Greater(t, dupNS, newNS)
	assert.Contains(t, content, "options timeout:2\n")
}
