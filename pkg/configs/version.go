package configs

// AppVersion 应用版本号，随发布更新，用于追踪与客户端标识.
const AppVersion = "1.0.0"
