package registry

import (
	"context"
	"fmt"
	"time"

	clientv3 "go.etcd.io/etcd/client/v3"

	"encode-service/pkg/logger"
)

// ServiceRegistry registers service instances into etcd under a leased key
// and keeps the lease alive until deregistration.
type ServiceRegistry struct {
	client          *clientv3.Client
	serviceName     string
	serviceID       string
	serviceAddr     string
	ttl             int64
	refreshInterval time.Duration
	leaseID         clientv3.LeaseID
	ctx             context.Context
	cancel          context.CancelFunc
}

// RegistryConfig defines etcd client configuration.
type RegistryConfig struct {
	Endpoints   []string
	DialTimeout time.Duration
	Username    string
	Password    string
}

// ServiceConfig defines service registration metadata. RefreshInterval is
// the wait before re-registering after the keep-alive stream drops.
type ServiceConfig struct {
	ServiceName     string
	ServiceID       string
	TTL             time.Duration
	RefreshInterval time.Duration
}

// NewServiceRegistry creates a new ServiceRegistry instance.
func NewServiceRegistry(registryConfig RegistryConfig, serviceConfig ServiceConfig, serviceAddr string) (*ServiceRegistry, error) {
	client, err := clientv3.New(clientv3.Config{
		Endpoints:   registryConfig.Endpoints,
		DialTimeout: registryConfig.DialTimeout,
		Username:    registryConfig.Username,
		Password:    registryConfig.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create etcd client: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	refresh := serviceConfig.RefreshInterval
	if refresh <= 0 {
		refresh = 10 * time.Second
	}

	return &ServiceRegistry{
		client:          client,
		serviceName:     serviceConfig.ServiceName,
		serviceID:       serviceConfig.ServiceID,
		serviceAddr:     serviceAddr,
		ttl:             int64(serviceConfig.TTL.Seconds()),
		refreshInterval: refresh,
		ctx:             ctx,
		cancel:          cancel,
	}, nil
}

// Register registers the service instance and starts the keep-alive loop.
func (r *ServiceRegistry) Register() error {
	if err := r.register(); err != nil {
		return err
	}
	go r.keepAlive()
	return nil
}

func (r *ServiceRegistry) register() error {
	leaseResp, err := r.client.Grant(r.ctx, r.ttl)
	if err != nil {
		return fmt.Errorf("failed to grant lease: %w", err)
	}
	r.leaseID = leaseResp.ID

	key := fmt.Sprintf("/services/%s/%s", r.serviceName, r.serviceID)
	if _, err := r.client.Put(r.ctx, key, r.serviceAddr, clientv3.WithLease(r.leaseID)); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	logger.Infof("Service registered key=%s addr=%s", key, r.serviceAddr)
	return nil
}

// keepAlive renews the lease; when the stream drops it re-registers after
// the refresh interval, until deregistration cancels the context.
func (r *ServiceRegistry) keepAlive() {
	for {
		ch, err := r.client.KeepAlive(r.ctx, r.leaseID)
		if err != nil {
			logger.Warnf("Failed to keep alive lease error=%v", err)
		} else {
			r.drainKeepAlive(ch)
		}

		select {
		case <-r.ctx.Done():
			return
		case <-time.After(r.refreshInterval):
		}
		if err := r.register(); err != nil {
			logger.Warnf("Service re-registration failed error=%v", err)
		}
	}
}

func (r *ServiceRegistry) drainKeepAlive(ch <-chan *clientv3.LeaseKeepAliveResponse) {
	for {
		select {
		case <-r.ctx.Done():
			return
		case ka := <-ch:
			if ka == nil {
				logger.Warn("Keep alive channel closed")
				return
			}
		}
	}
}

// Deregister revokes the lease and closes the etcd client.
func (r *ServiceRegistry) Deregister() error {
	r.cancel()
	if r.leaseID != 0 {
		if _, err := r.client.Revoke(context.Background(), r.leaseID); err != nil {
			logger.Warnf("Failed to revoke lease error=%v", err)
		}
	}
	if err := r.client.Close(); err != nil {
		return fmt.Errorf("failed to close etcd client: %w", err)
	}
	logger.Infof("Service deregistered service_id=%s", r.serviceID)
	return nil
}
