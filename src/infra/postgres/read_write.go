package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// ReadWriteClient separa o pool da réplica de leitura do pool do primário.
// Os repositórios de consulta usam GetReadPool; escritas usam GetWritePool.
type ReadWriteClient struct {
	readPool  *pgxpool.Pool
	writePool *pgxpool.Pool
}

type ReadWriteConfig struct {
	ReadHost       string
	WriteHost      string
	ReadPort       string
	WritePort      string
	DBName         string
	Username       string
	Password       string
	MaxConnections int
}

func NewReadWriteClient(cfg ReadWriteConfig) (*ReadWriteClient, error) {
	readPool, err := NewPostgresClient(cfg.ReadHost, cfg.ReadPort, cfg.DBName, cfg.Username, cfg.Password, cfg.MaxConnections)
	if err != nil {
		return nil, err
	}

	writePool, err := NewPostgresClient(cfg.WriteHost, cfg.WritePort, cfg.DBName, cfg.Username, cfg.Password, cfg.MaxConnections)
	if err != nil {
		readPool.Close()
		return nil, err
	}

	return &ReadWriteClient{
		readPool:  readPool,
		writePool: writePool,
	}, nil
}

func (rwc *ReadWriteClient) GetReadPool() *pgxpool.Pool {
	return rwc.readPool
}

func (rwc *ReadWriteClient) GetWritePool() *pgxpool.Pool {
	return rwc.writePool
}

func (rwc *ReadWriteClient) Close() {
	if rwc.readPool != nil {
		rwc.readPool.Close()
	}
	if rwc.writePool != nil {
		rwc.writePool.Close()
	}
}
