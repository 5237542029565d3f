package renderers

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
)

// 생성된 모든 파일의 첫 줄에 들어가는 경고 헤더입니다
const headerText = "Created by netstate-agent automatically, do not edit."

// Header는 주석 문자에 맞춘 자동 생성 헤더를 반환합니다
func Header(sep string) string {
	return sep + " " + headerText + "\n" + sep + "\n"
}

var whitespaceRegex = regexp.MustCompile(`\s`)

// QuoteValue는 공백이 포함된 값을 따옴표로 감쌉니다.
// 이미 감싸진 값은 그대로 반환하므로 멱등적입니다.
func QuoteValue(value string) string {
	if !whitespaceRegex.MatchString(value) {
		return value
	}
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return value
	}
	return `"` + value + `"`
}

// ConfigMap은 하나의 설정 스탠자를 나타내는 문자열 키 매핑입니다.
// 직렬화는 항상 키 정렬 순서를 따르므로 같은 입력에 대해 바이트 단위로
// 동일한 출력이 보장됩니다.
type ConfigMap struct {
	conf map[string]interface{}
}

// sysconfig 계열은 true/false 대신 yes/no를 사용합니다
var boolMap = map[bool]string{
	true:  "yes",
	false: "no",
}

// NewConfigMap은 빈 ConfigMap을 생성합니다
func NewConfigMap() *ConfigMap {
	return &ConfigMap{conf: make(map[string]interface{})}
}

// Set은 키에 값을 설정합니다
func (m *ConfigMap) Set(key string, value interface{}) {
	m.conf[key] = value
}

// Drop은 키를 제거합니다
func (m *ConfigMap) Drop(key string) {
	delete(m.conf, key)
}

// Len은 설정된 키 개수를 반환합니다
func (m *ConfigMap) Len() int {
	return len(m.conf)
}

// HasDirectives는 하나 이상의 키가 설정되어 있는지 확인합니다
func (m *ConfigMap) HasDirectives() bool {
	return len(m.conf) > 0
}

// Copy는 독립적인 사본을 반환합니다
func (m *ConfigMap) Copy() *ConfigMap {
	c := NewConfigMap()
	for k, v := range m.conf {
		c.conf[k] = v
	}
	return c
}

// String은 헤더와 정렬된 key=value 행들로 직렬화합니다
func (m *ConfigMap) String() string {
	var buf strings.Builder
	buf.WriteString(Header("#"))

	keys := make([]string, 0, len(m.conf))
	for k := range m.conf {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		var value string
		switch v := m.conf[key].(type) {
		case bool:
			value = boolMap[v]
		case string:
			value = v
		default:
			value = fmt.Sprintf("%v", v)
		}
		buf.WriteString(key + "=" + QuoteValue(value) + "\n")
	}

	return buf.String()
}

// Route는 하나의 인터페이스에 속하는 경로 설정 누적기입니다.
// 주소 패밀리별로 기본 경로는 한 번만 기록될 수 있습니다.
type Route struct {
	ifaceName string

	v4 *ConfigMap
	v6 *ConfigMap

	// 기본 경로가 아닌 항목에 붙는 자동 증가 인덱스
	LastIndex int

	hasDefaultIPv4 bool
	hasDefaultIPv6 bool
}

// NewRoute는 인터페이스에 대한 빈 Route를 생성합니다
func NewRoute(ifaceName string) *Route {
	return &Route{
		ifaceName: ifaceName,
		v4:        NewConfigMap(),
		v6:        NewConfigMap(),
		LastIndex: 1,
	}
}

// AddRoute는 경로 하나를 추가합니다.
// 같은 패밀리의 기본 경로가 두 번 들어오면 설정 오류입니다.
func (r *Route) AddRoute(rt entities.Route) error {
	if rt.IsDefault() {
		if rt.IsIPv6() {
			if r.hasDefaultIPv6 {
				return errors.NewValidationError(
					fmt.Sprintf("duplicate default IPv6 route for interface %s", r.ifaceName), nil)
			}
			r.hasDefaultIPv6 = true
			r.v6.Set("GATEWAY", rt.Gateway)
			return nil
		}
		if r.hasDefaultIPv4 {
			return errors.NewValidationError(
				fmt.Sprintf("duplicate default IPv4 route for interface %s", r.ifaceName), nil)
		}
		r.hasDefaultIPv4 = true
		r.v4.Set("GATEWAY", rt.Gateway)
		return nil
	}

	cm := r.v4
	if rt.IsIPv6() {
		cm = r.v6
	}
	idx := r.LastIndex
	r.LastIndex++
	cm.Set(fmt.Sprintf("ADDRESS%d", idx), rt.Network)
	cm.Set(fmt.Sprintf("NETMASK%d", idx), rt.Netmask)
	cm.Set(fmt.Sprintf("GATEWAY%d", idx), rt.Gateway)
	if rt.Metric > 0 {
		cm.Set(fmt.Sprintf("METRIC%d", idx), rt.Metric)
	}
	return nil
}

// HasIPv4는 IPv4 경로 지시어가 있는지 확인합니다
func (r *Route) HasIPv4() bool {
	return r.v4.HasDirectives()
}

// HasIPv6는 IPv6 경로 지시어가 있는지 확인합니다
func (r *Route) HasIPv6() bool {
	return r.v6.HasDirectives()
}

// IPv4String은 IPv4 경로 파일 내용을 반환합니다
func (r *Route) IPv4String() string {
	return r.v4.String()
}

// IPv6String은 IPv6 경로 파일 내용을 반환합니다
func (r *Route) IPv6String() string {
	return r.v6.String()
}

// Copy는 독립적인 사본을 반환합니다
func (r *Route) Copy() *Route {
	c := NewRoute(r.ifaceName)
	c.v4 = r.v4.Copy()
	c.v6 = r.v6.Copy()
	c.LastIndex = r.LastIndex
	c.hasDefaultIPv4 = r.hasDefaultIPv4
	c.hasDefaultIPv6 = r.hasDefaultIPv6
	return c
}
