package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"
	ce "github.com/arca-digital/complaints-book-backend/pkg/errors"
	"github.com/cloudevents/sdk-go/protocol/kafka_sarama/v2"
	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const DefaultAppName = "complaints-book"

// DefaultPlatformIP is always part of the derived allow-list when no explicit
// list is configured.
const DefaultPlatformIP = "207.58.173.84"

const (
	DefaultDNSTimeout        = 5 * time.Second
	DefaultPleskTimeout      = 20 * time.Second
	DefaultProvisioningBatch = 25
)

type Configuration struct {
	Database            Database
	Logging             Logging
	Loaded              bool
	Kafka               Kafka              `mapstructure:"kafka"`
	Metrics             Metrics            `mapstructure:"metrics"`
	Clients             Clients            `mapstructure:"clients"`
	Sentry              Sentry             `mapstructure:"sentry"`
	Platform            Platform           `mapstructure:"platform"`
	Domains             Domains            `mapstructure:"domains"`
	Plesk               Plesk              `mapstructure:"plesk"`
	Operator            Operator           `mapstructure:"operator"`
	NotificationsClient cloudevents.Client `mapstructure:"notification_client"`
}

type Clients struct {
	Redis Redis `mapstructure:"redis"`
}

type Database struct {
	Host              string
	Port              int
	User              string
	Password          string
	Name              string
	CACertPath        string        `mapstructure:"ca_cert_path"`
	PoolLimit         int           `mapstructure:"pool_limit"`
	SlowQueryDuration time.Duration `mapstructure:"slow_query_duration"`
	PgxLogging        bool          `mapstructure:"pgx_logging"`
}

type Logging struct {
	Level   string
	Console bool
	Color   bool
}

type Redis struct {
	Host       string
	Port       int
	Username   string
	Password   string
	DB         int
	Expiration time.Duration
}

type Sentry struct {
	Dsn         string
	Environment string
}

type Kafka struct {
	Bootstrap struct {
		Servers string `mapstructure:"servers"`
	} `mapstructure:"bootstrap"`
	Topic string `mapstructure:"topic"`
	Sasl  struct {
		Username  string
		Password  string
		Mechanism string
		Protocol  string
	} `mapstructure:"sasl"`
}

type Metrics struct {
	// Defines the path to the metrics server that the app should be configured to
	// listen on for metric traffic.
	Path string `mapstructure:"path"`

	// Defines the metrics port that the app should be configured to listen on for
	// metric traffic.
	Port int `mapstructure:"port"`
}

// Platform describes the domain the service itself is reachable on.
type Platform struct {
	BaseDomain            string `mapstructure:"base_domain"`
	AllowedIPs            string `mapstructure:"allowed_ips"`
	DefaultIP             string `mapstructure:"default_ip"`
	AllowSubdomainTenants bool   `mapstructure:"allow_subdomain_tenants"`
	DefaultTenantSlug     string `mapstructure:"default_tenant_slug"`
}

type Domains struct {
	VerifyRequired bool          `mapstructure:"verify_required"`
	DNSTimeout     time.Duration `mapstructure:"dns_timeout"`
	Nameservers    []string      `mapstructure:"nameservers"`
}

type Plesk struct {
	URL           string        `mapstructure:"url"`
	APIKey        string        `mapstructure:"api_key"`
	VerifyTLS     bool          `mapstructure:"verify_tls"`
	SiteName      string        `mapstructure:"site_name"`
	AutoProvision bool          `mapstructure:"auto_provision"`
	Timeout       time.Duration `mapstructure:"timeout"`
	BatchSize     int           `mapstructure:"batch_size"`
	// Interval runs provisioning passes inside the API process, 0 leaves it to cron.
	Interval time.Duration `mapstructure:"interval"`
}

type Operator struct {
	Token string `mapstructure:"token"`
}

// AllowedIPList splits the comma separated allow-list, dropping blanks and
// duplicates while keeping the configured order.
func (p Platform) AllowedIPList() []string {
	var ips []string
	seen := map[string]bool{}
	for _, ip := range strings.Split(p.AllowedIPs, ",") {
		ip = strings.TrimSpace(ip)
		if ip == "" || seen[ip] {
			continue
		}
		seen[ip] = true
		ips = append(ips, ip)
	}
	return ips
}

func (p Platform) Validate() error {
	if strings.TrimSpace(p.BaseDomain) == "" {
		return ce.NewConfigIncompleteError("platform.base_domain")
	}
	return nil
}

// Validate reports every panel setting the provisioning worker cannot run without.
func (p Plesk) Validate() error {
	var missing []string
	if strings.TrimSpace(p.URL) == "" {
		missing = append(missing, "plesk.url")
	}
	if strings.TrimSpace(p.APIKey) == "" {
		missing = append(missing, "plesk.api_key")
	}
	if strings.TrimSpace(p.SiteName) == "" {
		missing = append(missing, "plesk.site_name")
	}
	return ce.NewConfigIncompleteError(missing...)
}

var LoadedConfig Configuration

func Get() *Configuration {
	if !LoadedConfig.Loaded {
		Load()
	}
	return &LoadedConfig
}

func RedisUrl() string {
	return fmt.Sprintf("%s:%d", Get().Clients.Redis.Host, Get().Clients.Redis.Port)
}

func KafkaServers() []string {
	var servers []string
	for _, s := range strings.Split(Get().Kafka.Bootstrap.Servers, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}

// loadEnvFile copies a dotenv file into the process environment without
// overriding variables that are already set.
func loadEnvFile() {
	path := ".env"
	if p, ok := os.LookupEnv("ENV_FILE"); ok {
		path = p
	}
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Logger.Warn().Msgf("%s file not loaded: %s", path, err.Error())
	}
}

func readConfigFile(v *viper.Viper) {
	v.SetConfigName("config.yaml")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs/")
	v.AddConfigPath("../../configs/")
	v.AddConfigPath("../../../configs")

	if path, ok := os.LookupEnv("CONFIG_PATH"); ok {
		v.AddConfigPath(path)
	}
	err := v.ReadInConfig()
	if err != nil {
		log.Logger.Warn().Msgf("config.yaml file not loaded: %s", err.Error())
	}
}

// bindLegacyEnv keeps the variable names of existing deployments working.
func bindLegacyEnv(v *viper.Viper) {
	legacy := map[string][]string{
		"platform.base_domain":             {"PLATFORM_BASE_DOMAIN"},
		"platform.allowed_ips":             {"PLATFORM_ALLOWED_IPS"},
		"platform.default_tenant_slug":     {"PLATFORM_DEFAULT_TENANT_SLUG", "DEFAULT_TENANT_SLUG"},
		"platform.allow_subdomain_tenants": {"PLATFORM_ALLOW_SUBDOMAIN_TENANTS", "ALLOW_SUBDOMAIN_TENANTS"},
		"domains.verify_required":          {"DOMAINS_VERIFY_REQUIRED", "DOMAIN_VERIFY_REQUIRED"},
		"plesk.url":                        {"PLESK_URL", "PLESK_API_URL"},
		"plesk.api_key":                    {"PLESK_API_KEY"},
		"plesk.verify_tls":                 {"PLESK_VERIFY_TLS"},
		"plesk.site_name":                  {"PLESK_SITE_NAME"},
		"plesk.auto_provision":             {"PLESK_AUTO_PROVISION"},
		"operator.token":                   {"OPERATOR_TOKEN", "PLATFORM_OPERATOR_TOKEN"},
	}
	for key, names := range legacy {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			log.Logger.Warn().Err(err).Msgf("could not bind environment for %s", key)
		}
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("Loaded", true)
	// In viper you have to set defaults, otherwise loading from ENV doesn't work
	//   without a config file present
	v.SetDefault("database.host", "")
	v.SetDefault("database.port", "")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("database.pool_limit", 20)
	v.SetDefault("database.slow_query_duration", 2*time.Second)
	v.SetDefault("database.pgx_logging", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.port", 9000)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "")

	v.SetDefault("clients.redis.host", "")
	v.SetDefault("clients.redis.port", "")
	v.SetDefault("clients.redis.username", "")
	v.SetDefault("clients.redis.password", "")
	v.SetDefault("clients.redis.db", 0)
	v.SetDefault("clients.redis.expiration", 1*time.Minute)

	v.SetDefault("kafka.bootstrap.servers", "")
	v.SetDefault("kafka.topic", "platform.complaints-book.domains")
	v.SetDefault("kafka.sasl.username", "")
	v.SetDefault("kafka.sasl.password", "")
	v.SetDefault("kafka.sasl.mechanism", "")
	v.SetDefault("kafka.sasl.protocol", "")

	v.SetDefault("platform.base_domain", "")
	v.SetDefault("platform.allowed_ips", "")
	v.SetDefault("platform.default_ip", DefaultPlatformIP)
	v.SetDefault("platform.allow_subdomain_tenants", true)
	v.SetDefault("platform.default_tenant_slug", "platform")

	v.SetDefault("domains.verify_required", true)
	v.SetDefault("domains.dns_timeout", DefaultDNSTimeout)
	v.SetDefault("domains.nameservers", []string{})

	v.SetDefault("plesk.url", "")
	v.SetDefault("plesk.api_key", "")
	v.SetDefault("plesk.verify_tls", true)
	v.SetDefault("plesk.site_name", "")
	v.SetDefault("plesk.auto_provision", true)
	v.SetDefault("plesk.timeout", DefaultPleskTimeout)
	v.SetDefault("plesk.batch_size", DefaultProvisioningBatch)
	v.SetDefault("plesk.interval", 0)

	v.SetDefault("operator.token", "")
}

func Load() {
	v := viper.New()

	loadEnvFile()
	readConfigFile(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)
	setDefaults(v)

	err := v.Unmarshal(&LoadedConfig)
	if err != nil {
		panic(err)
	}

	if LoadedConfig.Clients.Redis.Host == "" {
		log.Warn().Msg("Caching is disabled.")
	}
	if LoadedConfig.Platform.BaseDomain == "" {
		log.Warn().Msg("platform.base_domain is not set, custom domains cannot be verified.")
	}

	if servers := KafkaServers(); len(servers) > 0 {
		LoadedConfig.NotificationsClient = SetupNotifications(servers, LoadedConfig)
	} else {
		log.Warn().Msg("kafka.bootstrap.servers is empty, domain notifications are disabled")
	}
}

func CustomHTTPErrorHandler(err error, c echo.Context) {
	var code int
	var message ce.ErrorResponse

	if c.Response().Committed {
		c.Logger().Error(err)
		return
	}

	var errResp ce.ErrorResponse
	var he *echo.HTTPError
	switch {
	case errors.As(err, &errResp):
		code = ce.GetGeneralResponseCode(errResp)
		message = errResp
	case errors.As(err, &he):
		message = ce.NewErrorResponseFromEchoError(he)
		code = message.Errors[0].Status
	case errors.Is(err, ce.ErrConfigIncomplete):
		code = http.StatusServiceUnavailable
		message = ce.NewErrorResponse(code, "Configuration incomplete", err.Error())
	default:
		code = http.StatusInternalServerError
		message = ce.NewErrorResponse(code, "", http.StatusText(http.StatusInternalServerError))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, message)
	}
	if err != nil {
		log.Logger.Error().Err(err).Msg("could not write error response")
	}
}

func SetupNotifications(kafkaServers []string, cfg Configuration) cloudevents.Client {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Version = sarama.V2_0_0_0
	saramaConfig.Producer.Return.Successes = true

	if strings.Contains(cfg.Kafka.Sasl.Protocol, "SSL") {
		log.Warn().Msgf("Configuring SSL authentication: %s", cfg.Kafka.Sasl.Protocol)
		saramaConfig.Net.TLS.Enable = true
	}

	if strings.HasPrefix(cfg.Kafka.Sasl.Protocol, "SASL_") {
		log.Warn().Msgf("Configuring SASL authentication: %s", cfg.Kafka.Sasl.Protocol)
		saramaConfig.Net.SASL.Enable = true
		saramaConfig.Net.SASL.User = cfg.Kafka.Sasl.Username
		saramaConfig.Net.SASL.Password = cfg.Kafka.Sasl.Password
		saramaConfig.Net.SASL.Mechanism = sarama.SASLMechanism(cfg.Kafka.Sasl.Mechanism)
	}

	protocol, err := kafka_sarama.NewSender(kafkaServers, saramaConfig, cfg.Kafka.Topic)
	if err != nil {
		log.Error().Err(err).Msg("failed to create kafka_sarama protocol")
		return nil
	}

	c, err := cloudevents.NewClient(protocol, cloudevents.WithTimeNow(), cloudevents.WithUUIDs())
	if err != nil {
		log.Error().Err(err).Msg("failed to create cloudevents client")
		return nil
	}
	return c
}
