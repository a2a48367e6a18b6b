// Package main 启动应用程序
package main

import "github.com/yeisme/docvault/pkg/cmd"

//	@title			DocVault API
//	@version		1.0
//	@description	DocVault 是一个多租户文档存储服务的实体生命周期与版本管理组件，提供文档/文件夹管理、版本台账、授权共享与回收站等功能。

//	@license.name	MIT
//	@license.url	https://opensource.org/license/mit/

//	@contact.name	yeisme
//	@contact.email	yefun2004@gmail.com.

func main() {
	if err := cmd.Execute(); err != nil {
		panic(err)
	}
}
