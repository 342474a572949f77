//    OratioGoServer
//    Copyright: E Gunderson 2024
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package vv

const (
	TERMINALTEXT = `Copyright (C) S12024S0 / S3E GundersonS0
      This program comes with ABSOLUTELY NO WARRANTY; without even the
      implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR
      PURPOSE. This is free software, and you are welcome to redistribute
      it and/or modify it under the terms of the GNU General Public
      License version 3.`

	HELPTEXTTEMPLATE = `S3command line optionsS0:
   C1-beC0 C2{string}C0 storage backend: C3sqliteC0 or C3postgresC0 [C6currentC0: C3{{.backend}}C0]
   C1-bwC0          disable color output in the console
   C1-cdC0 C2{string}C0 corpus directory to ingest at launch [C6currentC0: C3{{.corpdir}}C0]
   C1-cpC0 C2{string}C0 default corpus [C6knownC0: C3{{.knowncorp}}C0][C6currentC0: C3{{.defcorp}}C0]
   C1-elC0 C2{num}C0    set echo server log level (C10-3C0) [C6currentC0: C3{{.echoll}}C0]
   C1-glC0 C2{num}C0    set golang log level (C10-5C0) [C6currentC0: C3{{.ogsll}}C0]
   C1-gzC0          enable gzip compression of the server's output
   C1-hC0           print this help information
   C1-lcC0          fold all corpus tokens to lower case
   C1-liC0 C2{num}C0    LDA iterations [C6currentC0: C3{{.ldait}}C0]
   C1-ltC0 C2{num}C0    LDA topic count [C6currentC0: C3{{.ldatopics}}C0]
   C1-ndC0          n-gram contexts may NOT cross document boundaries
   C1-noC0 C2{num}C0    n-gram model order (C1{{.minord}}-{{.maxord}}C0) [C6currentC0: C3{{.order}}C0]
   C1-pcC0          enable CPU profiling run
   C1-pmC0          enable MEM profiling run
   C1-pgC0 C2{string}C0 supply full PostgreSQL credentials C4(*)C0
   C1-qC0           quiet startup: suppress copyright notice
   C1-rsC0 C2{num}C0    random seed for text generation; C10C0 means seed from the clock [C6currentC0: C3{{.seed}}C0]
   C1-saC0 C2{string}C0 server IP address [C6currentC0: C3{{.host}}C0]
   C1-spC0 C2{num}C0    server port [C6currentC0: C3{{.port}}C0]
   C1-sqC0 C2{string}C0 sqlite database file [C6currentC0: C3{{.sqfile}}C0]
   C1-tkC0          turn on the uptime ticker [unavailable if OS is Windows]
   C1-vC0           print version info and exit
   C1-vvC0          print full version info and exit
   C1-wcC0 C2{int}C0    number of ingestion workers [C1cpu_countC0 is C3{{.cpus}}C0][C6currentC0: C3{{.workers}}C0]
     (*) S3exampleS0:
         C4"{\"Pass\": \"YOURPASSWORDHERE\" ,\"Host\": \"127.0.0.1\", \"Port\": 5432, \"DBName\": \"oratioDB\" ,\"User\": \"ogs_wr\"}"C0

     S1NB:S0 a properly formatted version of "C3{{.conffile}}C0" in "C3{{.home}}C0" configures everything for you.
         See the sample configuration files at
             C3{{.projurl}}C0
`
	MINCONFIG = `
{"PostgreSQLPassword": "YOURPASSWORDHERE"}
`
)
