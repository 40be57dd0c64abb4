package plesk_client

import (
	"encoding/xml"
)

const packetVersion = "1.6.9.0"

type siteAliasAdd struct {
	XMLName   xml.Name `xml:"packet"`
	Version   string   `xml:"version,attr"`
	SiteAlias struct {
		Add struct {
			SiteName string `xml:"site-name"`
			Name     string `xml:"name"`
		} `xml:"add"`
	} `xml:"site-alias"`
}

type serverGetInfo struct {
	XMLName xml.Name `xml:"packet"`
	Version string   `xml:"version,attr"`
	Server  struct {
		Get struct {
			GenInfo struct{} `xml:"gen_info"`
		} `xml:"get"`
	} `xml:"server"`
}

func siteAliasAddPacket(siteName string, alias string) ([]byte, error) {
	p := siteAliasAdd{Version: packetVersion}
	p.SiteAlias.Add.SiteName = siteName
	p.SiteAlias.Add.Name = alias
	return marshalPacket(p)
}

func serverInfoPacket() ([]byte, error) {
	return marshalPacket(serverGetInfo{Version: packetVersion})
}

func marshalPacket(p interface{}) ([]byte, error) {
	body, err := xml.Marshal(p)
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
