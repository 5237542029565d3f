package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNetworkState_Validate(t *testing.T) {
	tests := []struct {
		name    string
		state   NetworkState
		wantErr error
	}{
		{
			name: "정상적인 상태",
			state: NetworkState{
				Interfaces: []Interface{
					{Name: "lo", Type: TypeLoopback},
					{Name: "eth0", Type: TypePhysical, MACAddress: "fa:16:3e:00:be:63",
						Subnets: []Subnet{{Type: SubnetDHCP4}}},
				},
			},
			wantErr: nil,
		},
		{
			name: "중복된 인터페이스 이름",
			state: NetworkState{
				Interfaces: []Interface{
					{Name: "eth0", Type: TypePhysical},
					{Name: "eth0", Type: TypePhysical},
				},
			},
			wantErr: ErrDuplicateInterface,
		},
		{
			name: "잘못된 MAC 주소",
			state: NetworkState{
				Interfaces: []Interface{
					{Name: "eth0", Type: TypePhysical, MACAddress: "not-a-mac"},
				},
			},
			wantErr: ErrInvalidMacAddress,
		},
		{
			name: "주소 없는 static 서브넷",
			state: NetworkState{
				Interfaces: []Interface{
					{Name: "eth1", Type: TypePhysical,
						Subnets: []Subnet{{Type: SubnetStatic}}},
				},
			},
			wantErr: ErrMissingAddress,
		},
		{
			name: "알 수 없는 인터페이스 타입",
			state: NetworkState{
				Interfaces: []Interface{
					{Name: "eth0", Type: InterfaceType("tunnel")},
				},
			},
			wantErr: ErrUnknownInterfaceType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestRoute_IsDefault(t *testing.T) {
	assert.True(t, Route{Network: "0.0.0.0", Netmask: "0.0.0.0", Gateway: "192.168.1.1"}.IsDefault())
	assert.True(t, Route{Network: "::", Netmask: "0", Gateway: "fe80::1"}.IsDefault())
	assert.False(t, Route{Network: "10.0.0.0", Netmask: "255.0.0.0", Gateway: "192.168.1.1"}.IsDefault())
}

func TestSubnetType_Helpers(t *testing.T) {
	assert.True(t, SubnetDHCP4.IsDHCP())
	assert.True(t, SubnetDHCP6.IsDHCP())
	assert.True(t, SubnetDHCP6.IsIPv6())
	assert.True(t, SubnetStatic.IsStatic())
	assert.True(t, SubnetStatic6.IsIPv6())
	assert.False(t, SubnetStatic.IsIPv6())

	// 상위 파서의 축약형 "dhcp"는 dhcp4로 정규화된다
	assert.Equal(t, SubnetDHCP4, NormalizeSubnetType("dhcp"))
	assert.Equal(t, SubnetStatic, NormalizeSubnetType("static"))
}

func TestNetworkState_InterfaceNames(t *testing.T) {
	state := NetworkState{
		Interfaces: []Interface{
			{Name: "lo", Type: TypeLoopback},
			{Name: "eth0", Type: TypePhysical},
			{Name: "eth1", Type: TypePhysical},
		},
	}

	assert.Equal(t, []string{"lo", "eth0", "eth1"}, state.InterfaceNames())
	assert.Equal(t, []string{"eth0", "eth1"}, state.NonLoopbackNames())
}
