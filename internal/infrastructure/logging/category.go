package logging

type Category string
type SubCategory string
type ExtraKey string

const (
	General         Category = "General"
	Realtime        Category = "Realtime"
	Redis           Category = "Redis"
	Mongo           Category = "Mongo"
	RabbitMQ        Category = "RabbitMQ"
	Validation      Category = "Validation"
	RequestResponse Category = "RequestResponse"
	Prometheus      Category = "Prometheus"
)

const (
	// General
	Startup         SubCategory = "Startup"
	Shutdown        SubCategory = "Shutdown"
	RateLimiting    SubCategory = "RateLimiting"
	ExternalService SubCategory = "ExternalService"

	// Realtime
	Directory SubCategory = "Directory"
	Presence  SubCategory = "Presence"
	Broadcast SubCategory = "Broadcast"
	Archive   SubCategory = "Archive"
)

const (
	AppName      ExtraKey = "AppName"
	LoggerName   ExtraKey = "Logger"
	RoomCode     ExtraKey = "RoomCode"
	DisplayName  ExtraKey = "DisplayName"
	ClientIp     ExtraKey = "ClientIp"
	Method       ExtraKey = "Method"
	StatusCode   ExtraKey = "StatusCode"
	Path         ExtraKey = "Path"
	Latency      ExtraKey = "Latency"
	ErrorMessage ExtraKey = "ErrorMessage"
)
