/*
This application writes a BIND zone file for a DNS seed of a network based on
Bitcoin technology. For example -
http://i0coin.org/
https://bitcoin.org/

It asks a running node for its peer list (getpeerinfo, either by running a
command or over json-rpc), keeps the outbound IPv4 peers that use the network
port and have a zero banscore, and prints a zone with one A record for each
of them. Run it from cron and redirect the output into the zone file of the
seed domain.

Features:
- Preconfigured support for I0coin & Bitcoin networks. use -network <network> to load the port.
- all zone values can be set in a yaml config file or on the command line
- master and any number of slave nameservers
- ipv4 only, peers on other ports are not advertised

*/
package main
