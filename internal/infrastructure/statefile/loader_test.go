package statefile

import (
	"testing"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	content := []byte(`
network:
  version: 1
  interfaces:
    - name: eth0
      type: physical
      macaddress: "aa:bb:cc:dd:ee:ff"
      subnets:
        - type: dhcp
    - name: eth1
      mtu: 9000
      subnets:
        - type: static
          address: 192.168.14.2
          netmask: 255.255.255.0
          gateway: 192.168.14.1
          dns_nameservers: [192.168.14.1]
          dns_search: [corp.example]
          routes:
            - network: 10.0.0.0
              netmask: 255.0.0.0
              gateway: 192.168.14.254
              metric: 100
  nameservers:
    addresses: [8.8.8.8]
    search: [example.com]
`)

	state, err := Parse(content)
	require.NoError(t, err)
	require.Len(t, state.Interfaces, 2)

	eth0 := state.Interfaces[0]
	assert.Equal(t, "eth0", eth0.Name)
	assert.Equal(t, entities.TypePhysical, eth0.Type)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", eth0.MACAddress)
	require.Len(t, eth0.Subnets, 1)
	// "dhcp" 별칭은 dhcp4로 정규화된다
	assert.Equal(t, entities.SubnetDHCP4, eth0.Subnets[0].Type)

	eth1 := state.Interfaces[1]
	// 타입 생략 시 physical
	assert.Equal(t, entities.TypePhysical, eth1.Type)
	assert.Equal(t, 9000, eth1.MTU)
	require.Len(t, eth1.Subnets, 1)
	subnet := eth1.Subnets[0]
	assert.Equal(t, entities.SubnetStatic, subnet.Type)
	assert.Equal(t, "192.168.14.2", subnet.Address)
	require.Len(t, subnet.Routes, 1)
	assert.Equal(t, 100, subnet.Routes[0].Metric)

	assert.Equal(t, []string{"8.8.8.8"}, state.DNSNameservers)
	assert.Equal(t, []string{"example.com"}, state.DNSSearchDomains)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "YAML 문법 오류",
			content: "network: [unclosed",
		},
		{
			name: "지원하지 않는 버전",
			content: `
network:
  version: 2
  interfaces: []
`,
		},
		{
			name: "유효성 검증 실패 - 중복 인터페이스",
			content: `
network:
  version: 1
  interfaces:
    - name: eth0
    - name: eth0
`,
		},
		{
			name: "유효성 검증 실패 - 주소 없는 static",
			content: `
network:
  version: 1
  interfaces:
    - name: eth0
      subnets:
        - type: static
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	state, err := Parse([]byte("network:\n  version: 1\n"))
	require.NoError(t, err)
	assert.Empty(t, state.Interfaces)
}
