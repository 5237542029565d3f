package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"

	"netstate-agent/internal/domain/entities"
	"netstate-agent/internal/domain/errors"
	"netstate-agent/internal/domain/interfaces"
)

// MySQLRepository는 MySQL 기반의 NetworkStateRepository 구현체입니다.
//
// 스키마:
//
//	node_network_state(node_name, generation, applied_generation,
//	                   applied_success, dns_nameservers, dns_search)
//	node_interfaces(id, node_name, name, type, macaddress, mtu)
//	interface_subnets(id, interface_id, position, type, address, netmask,
//	                  gateway, dns_nameservers, dns_search)
//	subnet_routes(id, subnet_id, position, network, netmask, gateway, metric)
//
// 다중 값 DNS 컬럼은 공백으로 구분된 목록으로 저장됩니다.
type MySQLRepository struct {
	db     *sql.DB
	logger *logrus.Logger
}

// NewMySQLRepository는 새로운 MySQLRepository를 생성합니다
func NewMySQLRepository(db *sql.DB, logger *logrus.Logger) interfaces.NetworkStateRepository {
	return &MySQLRepository{
		db:     db,
		logger: logger,
	}
}

// GetDesiredState는 노드의 목표 상태와 세대 번호를 조회합니다
func (r *MySQLRepository) GetDesiredState(ctx context.Context, nodeName string) (*entities.NetworkState, int64, error) {
	var generation int64
	var dnsNameservers, dnsSearch sql.NullString

	err := r.db.QueryRowContext(ctx, `
		SELECT generation, dns_nameservers, dns_search
		FROM node_network_state
		WHERE node_name = ?
	`, nodeName).Scan(&generation, &dnsNameservers, &dnsSearch)
	if err == sql.ErrNoRows {
		return nil, 0, errors.NewNotFoundError(fmt.Sprintf("목표 상태를 찾을 수 없음: node=%s", nodeName))
	}
	if err != nil {
		return nil, 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}

	state := &entities.NetworkState{
		DNSNameservers:   splitList(dnsNameservers),
		DNSSearchDomains: splitList(dnsSearch),
	}

	ifaces, err := r.loadInterfaces(ctx, nodeName)
	if err != nil {
		return nil, 0, err
	}
	state.Interfaces = ifaces

	if err := state.Validate(); err != nil {
		return nil, 0, errors.NewValidationError(
			fmt.Sprintf("저장된 목표 상태가 유효하지 않음: node=%s", nodeName), err)
	}

	return state, generation, nil
}

// loadInterfaces는 노드의 인터페이스들과 그 서브넷/경로를 조회합니다
func (r *MySQLRepository) loadInterfaces(ctx context.Context, nodeName string) ([]entities.Interface, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, type, macaddress, mtu
		FROM node_interfaces
		WHERE node_name = ?
		ORDER BY id
	`, nodeName)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	var ifaces []entities.Interface
	var ids []int64

	for rows.Next() {
		var id int64
		var iface entities.Interface
		var ifaceType string
		var mac sql.NullString
		var mtu sql.NullInt64

		if err := rows.Scan(&id, &iface.Name, &ifaceType, &mac, &mtu); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		iface.Type = entities.InterfaceType(ifaceType)
		if mac.Valid {
			iface.MACAddress = mac.String
		}
		if mtu.Valid {
			iface.MTU = int(mtu.Int64)
		}

		ifaces = append(ifaces, iface)
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	for i, id := range ids {
		subnets, err := r.loadSubnets(ctx, id)
		if err != nil {
			return nil, err
		}
		ifaces[i].Subnets = subnets
	}

	return ifaces, nil
}

// loadSubnets는 인터페이스 하나의 서브넷들을 position 순서로 조회합니다
func (r *MySQLRepository) loadSubnets(ctx context.Context, interfaceID int64) ([]entities.Subnet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, address, netmask, gateway, dns_nameservers, dns_search
		FROM interface_subnets
		WHERE interface_id = ?
		ORDER BY position
	`, interfaceID)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	var subnets []entities.Subnet
	var subnetIDs []int64

	for rows.Next() {
		var id int64
		var subnet entities.Subnet
		var subnetType string
		var address, netmask, gateway, dnsNameservers, dnsSearch sql.NullString

		if err := rows.Scan(&id, &subnetType, &address, &netmask, &gateway, &dnsNameservers, &dnsSearch); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}

		subnet.Type = entities.NormalizeSubnetType(subnetType)
		if address.Valid {
			subnet.Address = address.String
		}
		if netmask.Valid {
			subnet.Netmask = netmask.String
		}
		if gateway.Valid {
			subnet.Gateway = gateway.String
		}
		subnet.DNSNameservers = splitList(dnsNameservers)
		subnet.DNSSearch = splitList(dnsSearch)

		subnets = append(subnets, subnet)
		subnetIDs = append(subnetIDs, id)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	for i, id := range subnetIDs {
		routes, err := r.loadRoutes(ctx, id)
		if err != nil {
			return nil, err
		}
		subnets[i].Routes = routes
	}

	return subnets, nil
}

// loadRoutes는 서브넷 하나의 경로들을 position 순서로 조회합니다
func (r *MySQLRepository) loadRoutes(ctx context.Context, subnetID int64) ([]entities.Route, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT network, netmask, gateway, metric
		FROM subnet_routes
		WHERE subnet_id = ?
		ORDER BY position
	`, subnetID)
	if err != nil {
		return nil, errors.NewSystemError("데이터베이스 조회 실패", err)
	}
	defer rows.Close()

	var routes []entities.Route

	for rows.Next() {
		var route entities.Route
		var metric sql.NullInt64

		if err := rows.Scan(&route.Network, &route.Netmask, &route.Gateway, &metric); err != nil {
			r.logger.WithError(err).Error("행 스캔 실패")
			continue
		}
		if metric.Valid {
			route.Metric = int(metric.Int64)
		}

		routes = append(routes, route)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.NewSystemError("결과 처리 중 오류", err)
	}

	return routes, nil
}

// GetAppliedGeneration은 마지막으로 적용에 성공한 세대 번호를 반환합니다
func (r *MySQLRepository) GetAppliedGeneration(ctx context.Context, nodeName string) (int64, error) {
	var applied sql.NullInt64

	err := r.db.QueryRowContext(ctx, `
		SELECT applied_generation
		FROM node_network_state
		WHERE node_name = ? AND applied_success = 1
	`, nodeName).Scan(&applied)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.NewSystemError("데이터베이스 조회 실패", err)
	}

	if !applied.Valid {
		return 0, nil
	}
	return applied.Int64, nil
}

// MarkApplied는 해당 세대의 적용 결과를 기록합니다
func (r *MySQLRepository) MarkApplied(ctx context.Context, nodeName string, generation int64, success bool) error {
	appliedSuccess := 0
	if success {
		appliedSuccess = 1
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE node_network_state
		SET applied_generation = ?, applied_success = ?, applied_at = NOW()
		WHERE node_name = ?
	`, generation, appliedSuccess, nodeName)
	if err != nil {
		return errors.NewSystemError("적용 결과 기록 실패", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewSystemError("영향받은 행 확인 실패", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("목표 상태를 찾을 수 없음: node=%s", nodeName))
	}

	r.logger.WithFields(logrus.Fields{
		"node":       nodeName,
		"generation": generation,
		"success":    success,
	}).Info("적용 결과 기록 완료")

	return nil
}

// splitList는 공백으로 구분된 다중 값 컬럼을 슬라이스로 풉니다
func splitList(value sql.NullString) []string {
	if !value.Valid || strings.TrimSpace(value.String) == "" {
		return nil
	}
	return strings.Fields(value.String)
}
