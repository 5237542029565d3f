package constants

// 백엔드별 설정 경로들 (대상 루트 기준 상대 경로)
const (
	// ifupdown(eni) 관련 경로
	ENIDir      = "etc/network"
	ENIIfaceDir = "etc/network/interfaces.d"

	// sysconfig 관련 경로
	SysconfigScriptsDir = "etc/sysconfig/network-scripts"

	// Netplan 관련 경로
	NetplanDir = "etc/netplan"

	// systemd-networkd 관련 경로
	NetworkdDir = "etc/systemd/network"

	// etcnet 관련 경로
	EtcnetIfacesDir  = "etc/net/ifaces"
	EtcnetScriptsDir = "etc/net/scripts"

	// NetworkManager 설정 파일
	NetworkManagerConfig = "etc/NetworkManager/NetworkManager.conf"

	// 공용 DNS 파일
	ResolvConfPath = "etc/resolv.conf"

	// OS 감지 관련 경로
	OSReleaseFile = "/etc/os-release"
)

// 파일 권한과 타임아웃 상수들
const (
	ConfigFilePermission = 0644

	DefaultCommandTimeout = 30 // seconds
)

// 기본값 상수들
const (
	DefaultDBHost = "localhost"
	DefaultDBPort = "3306"
	DefaultDBName = "netstate"

	DefaultPollInterval = "30s"
	DefaultLogLevel     = "info"
	DefaultHealthPort   = "8080"
)
