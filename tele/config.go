package tele

type Config struct { //nolint:maligned
	Enabled           bool   `hcl:"enable"`
	KioskId           int    `hcl:"kiosk_id"`
	LogDebug          bool   `hcl:"log_debug"`
	KeepaliveSec      int    `hcl:"keepalive_sec"`
	MqttBroker        string `hcl:"mqtt_broker"`
	MqttLogDebug      bool   `hcl:"mqtt_log_debug"`
	MqttPassword      string `hcl:"mqtt_password"` // secret
	NetworkTimeoutSec int    `hcl:"network_timeout_sec"`
	StateIntervalSec  int    `hcl:"state_interval_sec"`
	TlsCaFile         string `hcl:"tls_ca_file"`

	PersistPath  string `hcl:"-"`
	BuildVersion string `hcl:"-"`
}
